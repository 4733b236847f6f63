// Package ui provides the Bubble Tea terminal interface for loadtrack.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns the theme, key map, help bar and the
// current Route, and delegates to one view at a time:
//
//   - Dashboard: static product description rendered with glamour
//   - Loads list: every record of the configured type, newest activity first,
//     filterable by the viewer's role and paged 50 rows at a time
//   - Provenance: the ownership history of one record, with a form for
//     reporters of the displayed property to submit a new value
//
// # Polling
//
// The list and provenance views each start a poll.Task when activated and stop
// it when the route changes. Results arrive as messages tagged with the task's
// session id; a view ignores any message whose session is not its own, so a
// response that lands after navigation never touches the new view's state.
// Fetch failures keep the previous rows on screen, show a dismissible notice,
// and stretch the poll interval until the API recovers.
//
// # Shared Primitives
//
//   - renderTable: stateless table over bubbles/table with a no-rows placeholder
//   - filterGroup: labelled filter chips with activation callbacks
//   - pagingButtons: bubbles/paginator reporting clamped page changes
//   - renderTitledBox: bordered panel with the title in its top border
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		API:        client,
//		RecordType: "load",
//		Start:      ui.ListRoute(),
//		Prefs:      p,
//		PrefsPath:  prefs.DefaultPath(),
//	})
package ui
