package bookingui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"syres/lib/scrapers/skedda"
)

// Resolver turns a location name into the space ids the remote API
// books against. Implemented by skedda.Client; faked in tests.
type Resolver interface {
	LocationSpaces(ctx context.Context, location string) ([]string, error)
}

// resolveResultMsg delivers the outcome of a background resolve
// through the bubbletea message loop. generation ties the result to
// the fetch that produced it so stale results can be discarded.
type resolveResultMsg struct {
	generation uint64
	location   string
	spaceIds   []string
	err        error
}

// Model is the top-level bubbletea model for the booking flow.
type Model struct {
	resolver  Resolver
	keys      KeyMap
	theme     Theme
	locations []string

	cursor int
	state  viewState
	spin   spinner.Model

	width  int
	height int

	// At most one resolve is in flight. Confirming a new location
	// cancels the pending fetch and bumps the generation so a late
	// result from the cancelled fetch is never applied.
	generation  uint64
	cancelFetch context.CancelFunc
}

func NewModel(resolver Resolver, locations []string) Model {
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return Model{
		resolver:  resolver,
		keys:      DefaultKeyMap,
		theme:     DefaultTheme,
		locations: locations,
		state:     locationSelectState{},
		spin:      spin,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height

	case spinner.TickMsg:
		if form, ok := m.state.(bookingFormState); ok && form.Pending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(message)
			return m, cmd
		}

	case resolveResultMsg:
		return m.applyResolveResult(message), nil
	}
	return m, nil
}

func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, m.keys.Quit) {
		return m, tea.Quit
	}

	switch state := m.state.(type) {
	case locationSelectState:
		switch {
		case key.Matches(message, m.keys.Back):
			return m, tea.Quit

		case key.Matches(message, m.keys.Up):
			if m.cursor == 0 {
				m.cursor = len(m.locations) - 1
			} else {
				m.cursor--
			}

		case key.Matches(message, m.keys.Down):
			if m.cursor >= len(m.locations)-1 {
				m.cursor = 0
			} else {
				m.cursor++
			}

		case key.Matches(message, m.keys.Confirm):
			location := m.locations[m.cursor]
			m.state = bookingFormState{Location: location, Pending: true}
			return m, tea.Batch(m.startResolve(location), m.spin.Tick)
		}

	case bookingFormState:
		switch {
		case key.Matches(message, m.keys.Back):
			m.abandonFetch()
			m.state = locationSelectState{}

		case key.Matches(message, m.keys.Confirm):
			m.abandonFetch()
			m.state = confirmationState{Location: state.Location}
		}

	case confirmationState:
		if key.Matches(message, m.keys.Back) || key.Matches(message, m.keys.Confirm) {
			m.state = locationSelectState{}
		}
	}

	return m, nil
}

// startResolve cancels any pending fetch and starts a new one under a
// fresh generation. The returned command blocks on the resolver and
// reports back through the message loop; the render loop keeps going.
func (m *Model) startResolve(location string) tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	m.generation++
	generation := m.generation

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	resolver := m.resolver
	return func() tea.Msg {
		spaceIds, err := resolver.LocationSpaces(ctx, location)
		if ctx.Err() != nil {
			return nil
		}
		return resolveResultMsg{
			generation: generation,
			location:   location,
			spaceIds:   spaceIds,
			err:        err,
		}
	}
}

// abandonFetch cancels a pending resolve and bumps the generation so
// a result that already left the goroutine is discarded on arrival.
func (m *Model) abandonFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
	m.generation++
}

func (m Model) applyResolveResult(message resolveResultMsg) Model {
	if message.generation != m.generation {
		return m
	}
	m.cancelFetch = nil

	form, ok := m.state.(bookingFormState)
	if !ok || form.Location != message.location {
		return m
	}

	form.Pending = false
	switch {
	case message.err != nil:
		form.Warning = describeError(message.err)
	case len(message.spaceIds) == 0:
		form.Warning = "no spaces available at this location"
	default:
		form.SpaceIds = message.spaceIds
	}
	m.state = form
	return m
}

// describeError converts scrape failures into operator-readable status
// text. Nothing here terminates the process.
func describeError(err error) string {
	var status skedda.StatusError
	var decode skedda.DecodeError
	var network skedda.NetworkError

	switch {
	case errors.Is(err, skedda.ErrTokenNotFound):
		return "booking page did not contain a verification token"
	case errors.As(err, &status):
		return fmt.Sprintf("remote returned status %d", status.Code)
	case errors.As(err, &decode):
		return "remote returned malformed booking data"
	case errors.As(err, &network):
		return "network failure, check your connection"
	}
	return err.Error()
}
