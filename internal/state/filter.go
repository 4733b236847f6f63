package state

import (
	"strings"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// Filter selects which records the list shows relative to the viewer.
type Filter int

const (
	FilterAll Filter = iota
	FilterOwned
	FilterCustodian
	FilterReporting
)

var filterLabels = map[Filter]string{
	FilterAll:       "All",
	FilterOwned:     "Owned",
	FilterCustodian: "Custodian",
	FilterReporting: "Reporting",
}

// Filters returns every mode in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterOwned, FilterCustodian, FilterReporting}
}

func (f Filter) String() string {
	if label, ok := filterLabels[f]; ok {
		return label
	}
	return filterLabels[FilterAll]
}

// Next returns the following mode, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// ParseFilter resolves a label case-insensitively.
func ParseFilter(value string) (Filter, bool) {
	value = strings.TrimSpace(value)
	for _, f := range Filters() {
		if strings.EqualFold(f.String(), value) {
			return f, true
		}
	}
	return FilterAll, false
}

// Match reports whether record passes the filter for the given viewer key.
// An empty key is an anonymous viewer, for whom every mode matches everything.
func (f Filter) Match(record supplychain.Record, key string) bool {
	if key == "" {
		return true
	}
	switch f {
	case FilterOwned:
		return record.Owner == key
	case FilterCustodian:
		return record.Custodian == key
	case FilterReporting:
		return record.IsReporter(key)
	default:
		return true
	}
}
