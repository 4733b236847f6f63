// Package state holds the per-view state containers of the loadtrack views.
//
// # Overview
//
// Views own their state explicitly: a RecordList for the List view and an
// OwnerHistory for the Provenance view. Both are created when a view is
// activated and discarded when it is torn down. Nothing here is shared or
// global; the only value that outlives a List view is its selected Filter,
// which the caller hands to the next instance.
//
// # Derivation
//
//	fetch result ──> Apply ──> sorted full set ──> Filter.Match ──> filtered set
//	                                                                  │
//	                                       PageBounds(page, len) <────┘
//
// Apply sorts records by their newest property update, descending, with
// records that were never updated last. The filter is re-applied on every
// Apply, so a selection survives refreshes.
//
// # Paging
//
// Both views use the same formula:
//
//	PageCount(n) = max(1, ceil(n / PageSize))
//	MaxPage(n)   = PageCount(n) - 1
//
// Page indexes are clamped on every mutation, so PageRecords and PageOwners
// never slice out of range. Changing the filter keeps the current page index
// (clamped) rather than resetting it to the first page.
//
// # Idempotence
//
// Apply reports whether the new data differ from what is stored. Identical
// consecutive responses return false and leave the state untouched, so the
// views can skip re-rendering.
//
// # Freshness
//
// Freshness records fetch outcomes the way a status bar needs them: last
// attempt, last success, consecutive failures, and a dismissible error
// notice. Errors never clear previously fetched data.
//
// # Concurrency
//
// These types are not safe for concurrent use. They are mutated only from
// the Bubble Tea update loop.
package state
