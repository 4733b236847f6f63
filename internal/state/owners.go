package state

import (
	"reflect"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// OwnerHistory holds the Provenance view state for one record.
type OwnerHistory struct {
	recordID string
	page     int
	loaded   bool
	owners   []supplychain.Owner
}

// NewOwnerHistory creates provenance state for recordID.
func NewOwnerHistory(recordID string) *OwnerHistory {
	return &OwnerHistory{recordID: recordID}
}

// Apply stores a fresh ownership history in API order and reports whether it
// differs from the previous one.
func (h *OwnerHistory) Apply(owners []supplychain.Owner) bool {
	dup := make([]supplychain.Owner, len(owners))
	copy(dup, owners)
	if h.loaded && reflect.DeepEqual(dup, h.owners) {
		return false
	}
	h.owners = dup
	h.loaded = true
	h.page = ClampPage(h.page, len(h.owners))
	return true
}

func (h *OwnerHistory) RecordID() string { return h.recordID }
func (h *OwnerHistory) Loaded() bool     { return h.loaded }
func (h *OwnerHistory) Len() int         { return len(h.owners) }
func (h *OwnerHistory) Page() int        { return h.page }
func (h *OwnerHistory) PageCount() int   { return PageCount(len(h.owners)) }
func (h *OwnerHistory) MaxPage() int     { return MaxPage(len(h.owners)) }

// SetPage selects a page, clamped to the valid range.
func (h *OwnerHistory) SetPage(page int) {
	h.page = ClampPage(page, len(h.owners))
}

// PageOwners returns the owner entries of the current page.
func (h *OwnerHistory) PageOwners() []supplychain.Owner {
	start, end := PageBounds(h.page, len(h.owners))
	return h.owners[start:end]
}
