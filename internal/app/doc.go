// Package app is the composition root for loadtrack.
//
// Run wires the pieces together in order:
//
//  1. config.Load reads ~/.config/loadtrack/config.toml (or the -config path)
//     and the -public-key flag overrides the viewer identity.
//  2. openLogger sends slog text output to the configured log file. The TUI
//     owns the terminal, so nothing is logged to stderr.
//  3. prefs.Load restores the theme, list filter and start view.
//  4. supplychain.NewClient builds the REST client with the viewer key, auth
//     token and request timeout.
//  5. ui.Run starts the Bubble Tea program and blocks.
//
// Polling is owned by the views themselves: each list or provenance
// activation starts its own poll.Task and stops it on teardown, so there is no
// background poller here.
//
// Fatal errors are limited to startup: an unreadable or invalid config, a bad
// API URL, or an unwritable log file. Fetch failures during a session are shown
// in the UI and retried with backoff.
//
// Usage:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := app.Run(ctx, app.Options{Record: "load-42"}); err != nil {
//		log.Fatalf("loadtrack: %v", err)
//	}
package app
