package state

import "time"

// Freshness tracks how current a view's data is and which fetch error, if
// any, should be shown to the viewer.
type Freshness struct {
	LastUpdated         time.Time // last fetch attempt
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int

	dismissed string
}

// Record notes the outcome of one fetch. On error the previous data stays in
// place; only the bookkeeping changes.
func (f *Freshness) Record(err error, at time.Time) {
	f.LastUpdated = at
	if err != nil {
		f.LastError = err
		f.ConsecutiveFailures++
		return
	}
	f.LastError = nil
	f.LastSuccess = at
	f.ConsecutiveFailures = 0
	f.dismissed = ""
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (f Freshness) IsOffline() bool {
	return f.ConsecutiveFailures >= 2
}

// Notice returns the inline error text, unless the viewer dismissed it.
func (f Freshness) Notice() (string, bool) {
	if f.LastError == nil {
		return "", false
	}
	msg := f.LastError.Error()
	if msg == f.dismissed {
		return "", false
	}
	return msg, true
}

// Dismiss hides the current notice until a different error occurs or a fetch
// succeeds.
func (f *Freshness) Dismiss() {
	if f.LastError != nil {
		f.dismissed = f.LastError.Error()
	}
}
