package ui

import "time"

// LayoutCompactWidth is the terminal width below which the header drops the
// record type.
const LayoutCompactWidth = 100

// Polling cadences.
const (
	// RecordPollInterval is the refresh cadence of the list view.
	RecordPollInterval = 5 * time.Second

	// OwnerPollInterval is the refresh cadence of the provenance view.
	OwnerPollInterval = 2 * time.Second

	// SubmitTimeout bounds a single property update submission.
	SubmitTimeout = 10 * time.Second

	// HeaderRefresh re-renders relative timestamps in the header.
	HeaderRefresh = time.Second
)

// chromeHeight is the number of lines used by the header and command bar.
const chromeHeight = 2
