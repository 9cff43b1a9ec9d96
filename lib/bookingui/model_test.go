package bookingui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"syres/lib/scrapers/skedda"
)

// fakeResolver returns canned results per location and records the
// context of every call so tests can observe cancellation.
type fakeResolver struct {
	spaces map[string][]string
	err    error
	calls  []context.Context
}

func (f *fakeResolver) LocationSpaces(ctx context.Context, location string) ([]string, error) {
	f.calls = append(f.calls, ctx)
	if f.err != nil {
		return nil, f.err
	}
	return f.spaces[location], nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(s))
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// resolveMsg executes the command returned when a location is
// confirmed and extracts the resolve result from the batch it shares
// with the spinner tick. Returns nil when the fetch was cancelled.
func resolveMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		if result, ok := c().(resolveResultMsg); ok {
			return result
		}
	}
	return nil
}

func TestInitialState(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A", "B"})

	require.IsType(t, locationSelectState{}, m.state)
	require.Equal(t, 0, m.cursor)
}

func TestDefaultLocationsFallback(t *testing.T) {
	m := NewModel(&fakeResolver{}, nil)
	require.Equal(t, DefaultLocations, m.locations)
}

func TestCursorMovementWraps(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A", "B", "C"})

	m, _ = press(t, m, "j")
	require.Equal(t, 1, m.cursor)
	m, _ = press(t, m, "down")
	require.Equal(t, 2, m.cursor)
	m, _ = press(t, m, "j")
	require.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "k")
	require.Equal(t, 2, m.cursor)
	m, _ = press(t, m, "up")
	require.Equal(t, 1, m.cursor)
}

func TestConfirmSelectionEntersBookingForm(t *testing.T) {
	m := NewModel(&fakeResolver{spaces: map[string][]string{"A": {"1"}}}, []string{"A", "B"})

	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)

	form, ok := m.state.(bookingFormState)
	require.True(t, ok)
	require.Equal(t, "A", form.Location)
	require.True(t, form.Pending)
	require.Empty(t, form.SpaceIds)
}

func TestResolveResultApplied(t *testing.T) {
	resolver := &fakeResolver{spaces: map[string][]string{"A": {"1", "2", "3"}}}
	m := NewModel(resolver, []string{"A"})

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)

	form, ok := m.state.(bookingFormState)
	require.True(t, ok)
	require.False(t, form.Pending)
	require.Empty(t, form.Warning)
	require.Equal(t, []string{"1", "2", "3"}, form.SpaceIds)
}

func TestResolveMissShowsWarning(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A"})

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)

	form, ok := m.state.(bookingFormState)
	require.True(t, ok)
	require.False(t, form.Pending)
	require.Empty(t, form.SpaceIds)
	require.Contains(t, form.Warning, "no spaces available")
}

func TestResolveErrorShowsWarningAndStays(t *testing.T) {
	m := NewModel(&fakeResolver{err: skedda.ErrTokenNotFound}, []string{"A"})

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)

	// scrape failures surface as status text, the machine stays put
	form, ok := m.state.(bookingFormState)
	require.True(t, ok)
	require.Contains(t, form.Warning, "verification token")
}

func TestCancelDiscardsSelection(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A", "B"})

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "esc")

	require.IsType(t, locationSelectState{}, m.state)
}

func TestBookingFormConfirmToConfirmation(t *testing.T) {
	m := NewModel(&fakeResolver{spaces: map[string][]string{"A": {"1"}}}, []string{"A"})

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)

	m, _ = press(t, m, "enter")
	confirmation, ok := m.state.(confirmationState)
	require.True(t, ok)
	require.Equal(t, "A", confirmation.Location)

	// both confirm and cancel leave the confirmation screen
	m, _ = press(t, m, "enter")
	require.IsType(t, locationSelectState{}, m.state)
}

func TestConfirmationCancelReturnsToSelection(t *testing.T) {
	m := NewModel(&fakeResolver{spaces: map[string][]string{"A": {"1"}}}, []string{"A"})

	m, cmd := press(t, m, "enter")
	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)
	m, _ = press(t, m, "enter")

	m, _ = press(t, m, "esc")
	require.IsType(t, locationSelectState{}, m.state)
}

func TestSingleFetchInFlight(t *testing.T) {
	resolver := &fakeResolver{spaces: map[string][]string{
		"A": {"1"},
		"B": {"2"},
	}}
	m := NewModel(resolver, []string{"A", "B"})

	// confirm A, then abandon it and confirm B before A's result lands
	m, cmdA := press(t, m, "enter")
	staleGeneration := m.generation

	m, _ = press(t, m, "esc")
	m, _ = press(t, m, "j")
	m, cmdB := press(t, m, "enter")

	// the first fetch's context is cancelled, its command yields nothing
	require.Nil(t, resolveMsg(t, cmdA))
	require.Error(t, resolver.calls[0].Err())

	// even a fabricated stale result is discarded by generation
	next, _ := m.Update(resolveResultMsg{
		generation: staleGeneration,
		location:   "A",
		spaceIds:   []string{"1"},
	})
	m = next.(Model)
	form := m.state.(bookingFormState)
	require.Equal(t, "B", form.Location)
	require.True(t, form.Pending)

	// only the second fetch's result is applied
	next, _ = m.Update(resolveMsg(t, cmdB))
	m = next.(Model)
	form = m.state.(bookingFormState)
	require.Equal(t, "B", form.Location)
	require.False(t, form.Pending)
	require.Equal(t, []string{"2"}, form.SpaceIds)
}

func TestStaleResultForDifferentLocationIgnored(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A", "B"})

	m, _ = press(t, m, "enter")

	next, _ := m.Update(resolveResultMsg{
		generation: m.generation,
		location:   "B",
		spaceIds:   []string{"9"},
	})
	m = next.(Model)

	form := m.state.(bookingFormState)
	require.Equal(t, "A", form.Location)
	require.True(t, form.Pending)
	require.Empty(t, form.SpaceIds)
}

func TestForceQuitFromAnyState(t *testing.T) {
	m := NewModel(&fakeResolver{}, []string{"A"})

	_, cmd := press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())

	m, _ = press(t, m, "enter")
	_, cmd = press(t, m, "ctrl+c")
	require.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersEachState(t *testing.T) {
	m := NewModel(&fakeResolver{spaces: map[string][]string{"A": {"1"}}}, []string{"A", "B"})

	require.Contains(t, m.View(), "Make a booking at Switchyards")
	require.Contains(t, m.View(), "A")

	m, cmd := press(t, m, "enter")
	require.Contains(t, m.View(), "Booking Form - A")

	next, _ := m.Update(resolveMsg(t, cmd))
	m = next.(Model)
	require.Contains(t, m.View(), "1 spaces available")

	m, _ = press(t, m, "enter")
	require.Contains(t, m.View(), "Booking Confirmed!")
}
