package skedda

import (
	"slices"
	"strconv"
)

// Catalog is the decoded /webs document. Either collection may be
// absent depending on what the remote schema version returns.
type Catalog struct {
	Venue  []Venue `json:"venue"`
	Spaces []Space `json:"spaces"`
}

type Venue struct {
	Id                int64             `json:"id"`
	SpacePresentation SpacePresentation `json:"spacePresentation"`
}

type SpacePresentation struct {
	SpaceTags []SpaceTag `json:"spaceTags"`
}

// SpaceTag groups the bookable spaces of one physical location under
// a human-readable name.
type SpaceTag struct {
	Name     string  `json:"name"`
	SpaceIds []int64 `json:"spaceIds"`
}

type Space struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// ResolveSpaceIds returns the space ids of the first tag whose name
// equals location exactly, stringified in source order. No match is a
// soft miss: the result is empty and the caller decides how to surface
// it. Pure function over the already-fetched catalog.
func (c Catalog) ResolveSpaceIds(location string) []string {
	for _, venue := range c.Venue {
		for _, tag := range venue.SpacePresentation.SpaceTags {
			if tag.Name != location {
				continue
			}
			ids := make([]string, len(tag.SpaceIds))
			for i, id := range tag.SpaceIds {
				ids[i] = strconv.FormatInt(id, 10)
			}
			return ids
		}
	}
	return nil
}

// SpaceNames maps space id to display name from the flat spaces
// collection. The flat collection is informational only, it is never
// used to resolve a location to ids.
func (c Catalog) SpaceNames() map[string]string {
	names := make(map[string]string, len(c.Spaces))
	for _, space := range c.Spaces {
		if space.Id == "" {
			continue
		}
		names[space.Id] = space.Name
	}
	return names
}

// LocationNames returns the distinct tag names across all venues,
// sorted for stable display.
func (c Catalog) LocationNames() []string {
	var names []string
	for _, venue := range c.Venue {
		for _, tag := range venue.SpacePresentation.SpaceTags {
			if tag.Name == "" || slices.Contains(names, tag.Name) {
				continue
			}
			names = append(names, tag.Name)
		}
	}
	slices.Sort(names)
	return names
}
