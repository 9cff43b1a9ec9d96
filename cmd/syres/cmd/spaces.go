package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces <location>",
	Short: "Resolves a location name to its space ids and prints them.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		location := strings.Join(args, " ")

		client, _, err := setup(ctx)
		if err != nil {
			return err
		}

		session, err := client.EstablishSession(ctx)
		if err != nil {
			return err
		}
		catalog, err := client.FetchCatalog(ctx, session)
		if err != nil {
			return err
		}

		spaceIds := catalog.ResolveSpaceIds(location)
		if len(spaceIds) == 0 {
			fmt.Printf("no spaces available at %q\n", location)
			return nil
		}
		names := catalog.SpaceNames()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Space ID", "Name"})
		for _, id := range spaceIds {
			t.AppendRow(table.Row{id, names[id]})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
