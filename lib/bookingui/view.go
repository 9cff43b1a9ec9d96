package bookingui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch state := m.state.(type) {
	case locationSelectState:
		return m.viewLocationSelect()
	case bookingFormState:
		return m.viewBookingForm(state)
	case confirmationState:
		return m.viewConfirmation(state)
	}
	return ""
}

func (m Model) viewLocationSelect() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("syres"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Make a booking at Switchyards"))
	b.WriteString("\n\n")

	for i, location := range m.locations {
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render(">> " + location))
		} else {
			b.WriteString(m.theme.Item.Render("   " + location))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("j/k move · Enter confirm · q quit"))

	return m.place(b.String())
}

func (m Model) viewBookingForm(state bookingFormState) string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Booking Form - " + state.Location))
	b.WriteString("\n\n")

	switch {
	case state.Pending:
		b.WriteString(m.spin.View())
		b.WriteString(" looking up spaces...")
	case state.Warning != "":
		b.WriteString(m.theme.Warning.Render(state.Warning))
	default:
		b.WriteString(fmt.Sprintf("%d spaces available\n", len(state.SpaceIds)))
		b.WriteString(m.theme.Subtitle.Render(strings.Join(state.SpaceIds, ", ")))
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("Enter confirm booking · Esc back"))

	return m.place(m.theme.Modal.Render(b.String()))
}

func (m Model) viewConfirmation(state confirmationState) string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Booking Confirmed!"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Your booking at %s has been confirmed.", state.Location))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("Esc return to location selection"))

	return m.place(m.theme.Modal.Render(b.String()))
}

// place centers content once the terminal size is known; before the
// first WindowSizeMsg the content is returned as-is.
func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
