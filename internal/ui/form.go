package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is an overlay that takes every key while open. Update reports closed
// when the overlay should be dismissed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (m Modal, cmd tea.Cmd, closed bool)
	View(theme Theme, width, height int) string
}

// updateForm collects a new value for one property and hands it to submit.
// It stays open while the submission is in flight.
type updateForm struct {
	property   string
	current    string
	input      textinput.Model
	spinner    spinner.Model
	submitting bool
	err        string
	submit     func(value string) tea.Cmd
}

var _ Modal = (*updateForm)(nil)

func newUpdateForm(property, current string, submit func(value string) tea.Cmd) (*updateForm, tea.Cmd) {
	in := textinput.New()
	in.Placeholder = current
	in.Prompt = "› "
	in.CharLimit = 256
	in.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	f := &updateForm{
		property: property,
		current:  current,
		input:    in,
		spinner:  sp,
		submit:   submit,
	}
	return f, f.input.Focus()
}

// Update implements Modal.
func (f *updateForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.submitting {
			return f, nil, false
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd, false

	case tea.KeyMsg:
		if f.submitting {
			return f, nil, false
		}
		switch {
		case key.Matches(msg, keys.Cancel):
			return f, nil, true
		case key.Matches(msg, keys.Submit):
			value := strings.TrimSpace(f.input.Value())
			if value == "" {
				f.err = "Enter a value"
				return f, nil, false
			}
			f.err = ""
			f.submitting = true
			f.input.Blur()
			return f, tea.Batch(f.spinner.Tick, f.submit(value)), false
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, false
}

// View implements Modal.
func (f *updateForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Update " + titleCase(f.property)))
	b.WriteString("\n")
	if f.current != "" {
		b.WriteString(styles.MutedText.Render("Current: " + f.current))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")
	switch {
	case f.submitting:
		b.WriteString(f.spinner.View() + " " + styles.WarningText.Render("Submitting..."))
	case f.err != "":
		b.WriteString(styles.DangerText.Render(f.err))
	default:
		b.WriteString(styles.FaintText.Render("enter submit  esc cancel"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal.Render(b.String()))
}
