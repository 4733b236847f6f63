package state

import (
	"reflect"
	"sort"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// RecordList holds the List view state: the full fetched set, the filtered
// view derived from it and the current page.
type RecordList struct {
	identity string
	filter   Filter
	page     int
	loaded   bool

	all      []supplychain.Record
	filtered []supplychain.Record
}

// NewRecordList creates list state for the viewer identity. An empty identity
// means unauthenticated, which always shows the unfiltered set.
func NewRecordList(identity string, filter Filter) *RecordList {
	return &RecordList{identity: identity, filter: filter}
}

// Apply stores a fresh fetch result, sorted newest first, and re-applies the
// active filter. It reports whether anything visible changed.
func (l *RecordList) Apply(records []supplychain.Record) bool {
	sorted := sortByLatest(records)
	if l.loaded && reflect.DeepEqual(sorted, l.all) {
		return false
	}
	l.all = sorted
	l.loaded = true
	l.refilter()
	return true
}

// SetFilter switches the filter mode. The page index is kept, only clamped to
// the new result size.
func (l *RecordList) SetFilter(f Filter) {
	if f == l.filter {
		return
	}
	l.filter = f
	l.refilter()
}

// SetPage selects a page, clamped to the valid range.
func (l *RecordList) SetPage(page int) {
	l.page = ClampPage(page, len(l.filtered))
}

// Filter returns the selected filter mode.
func (l *RecordList) Filter() Filter { return l.filter }

// Authenticated reports whether filtering is available.
func (l *RecordList) Authenticated() bool { return l.identity != "" }

// Loaded reports whether at least one fetch result was applied.
func (l *RecordList) Loaded() bool { return l.loaded }

// Page returns the current zero-based page index.
func (l *RecordList) Page() int { return l.page }

// PageCount returns the number of pages over the filtered set.
func (l *RecordList) PageCount() int { return PageCount(len(l.filtered)) }

// MaxPage returns the last valid page index.
func (l *RecordList) MaxPage() int { return MaxPage(len(l.filtered)) }

// All returns the full sorted set.
func (l *RecordList) All() []supplychain.Record { return l.all }

// Filtered returns the filtered, sorted set.
func (l *RecordList) Filtered() []supplychain.Record { return l.filtered }

// PageRecords returns the rows of the current page.
func (l *RecordList) PageRecords() []supplychain.Record {
	start, end := PageBounds(l.page, len(l.filtered))
	return l.filtered[start:end]
}

func (l *RecordList) effectiveFilter() Filter {
	if !l.Authenticated() {
		return FilterAll
	}
	return l.filter
}

func (l *RecordList) refilter() {
	f := l.effectiveFilter()
	if f == FilterAll {
		l.filtered = l.all
	} else {
		out := make([]supplychain.Record, 0, len(l.all))
		for _, r := range l.all {
			if f.Match(r, l.identity) {
				out = append(out, r)
			}
		}
		l.filtered = out
	}
	l.page = ClampPage(l.page, len(l.filtered))
}

// sortByLatest copies records and orders them by newest property update,
// descending. Records without updates go last; ties keep fetch order.
func sortByLatest(records []supplychain.Record) []supplychain.Record {
	out := make([]supplychain.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := out[i].LatestUpdate()
		tj, okj := out[j].LatestUpdate()
		if oki != okj {
			return oki
		}
		return ti > tj
	})
	return out
}
