package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewList      key.Binding
	Back          key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Paging
	PrevPage key.Binding
	NextPage key.Binding

	// List actions
	Open         key.Binding
	CopyID       key.Binding
	CycleFilter  key.Binding
	SelectFilter key.Binding
	Dismiss      key.Binding

	// Provenance actions
	UpdateProperty key.Binding

	// Form
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dashboard"),
		),
		ViewList: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Loads"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back to loads"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("]", "Next page"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Provenance"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy load id"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		SelectFilter: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Select filter"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss notice"),
		),

		UpdateProperty: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Update property"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// contextKeys adapts a route-specific binding set to help.KeyMap.
type contextKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (c contextKeys) ShortHelp() []key.Binding  { return c.short }
func (c contextKeys) FullHelp() [][]key.Binding { return c.full }

// forRoute returns the bindings shown in the command bar and help overlay.
func (k keyMap) forRoute(r Route, authenticated, canSubmit, formOpen bool) contextKeys {
	general := []key.Binding{k.CycleTheme, k.Help, k.Quit}
	switch {
	case formOpen:
		return contextKeys{
			short: []key.Binding{k.Submit, k.Cancel},
			full:  [][]key.Binding{{k.Submit, k.Cancel}},
		}
	case r.Kind == RouteList:
		actions := []key.Binding{k.Open, k.CopyID, k.Dismiss}
		if authenticated {
			actions = append(actions, k.CycleFilter, k.SelectFilter)
		}
		short := []key.Binding{k.Open, k.CopyID}
		if authenticated {
			short = append(short, k.CycleFilter)
		}
		short = append(short, k.PrevPage, k.NextPage, k.ViewDashboard, k.Help)
		return contextKeys{
			short: short,
			full: [][]key.Binding{
				{k.Tab, k.ViewDashboard, k.ViewList},
				{k.Up, k.Down, k.Top, k.Bottom, k.PrevPage, k.NextPage},
				actions,
				general,
			},
		}
	case r.Kind == RouteProvenance:
		short := []key.Binding{k.Back}
		actions := []key.Binding{k.Back, k.Dismiss}
		if canSubmit {
			short = append(short, k.UpdateProperty)
			actions = append(actions, k.UpdateProperty)
		}
		short = append(short, k.PrevPage, k.NextPage, k.Help)
		return contextKeys{
			short: short,
			full: [][]key.Binding{
				{k.Tab, k.ViewDashboard, k.ViewList},
				{k.PrevPage, k.NextPage},
				actions,
				general,
			},
		}
	default:
		return contextKeys{
			short: []key.Binding{k.ViewList, k.Tab, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Tab, k.ViewDashboard, k.ViewList},
				general,
			},
		}
	}
}
