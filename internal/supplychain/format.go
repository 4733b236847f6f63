package supplychain

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	unknownTime     = "Unknown"

	// MaxIDLength is the longest record identifier shown before truncation.
	MaxIDLength = 32
)

// FormatTimestamp renders a unix-seconds timestamp in local time.
func FormatTimestamp(sec int64) string {
	if sec <= 0 {
		return unknownTime
	}
	return time.Unix(sec, 0).Local().Format(timestampLayout)
}

// FormatLatest renders the newest update time of a record.
func FormatLatest(r Record) string {
	ts, ok := r.LatestUpdate()
	if !ok {
		return unknownTime
	}
	return FormatTimestamp(ts)
}

// FormatOldest renders the oldest update time of a record.
func FormatOldest(r Record) string {
	ts, ok := r.OldestUpdate()
	if !ok {
		return unknownTime
	}
	return FormatTimestamp(ts)
}

// FormatUpdateCount renders the total number of property updates.
func FormatUpdateCount(r Record) string {
	return strconv.Itoa(r.UpdateCount())
}

// TruncateID shortens an identifier to MaxIDLength runes, ending in "..."
// when anything was cut.
func TruncateID(id string) string {
	runes := []rune(id)
	if len(runes) <= MaxIDLength {
		return id
	}
	return string(runes[:MaxIDLength-3]) + "..."
}

// FormatRelative describes t relative to now, e.g. "5 seconds ago".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
