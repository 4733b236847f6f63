// Package supplychain is the client side of the supply chain REST API.
//
// # Overview
//
// The API fronts a distributed ledger that tracks loads (records) through
// their owners and custodians. Every write is turned into a ledger
// transaction behind the API; this package only reads snapshots and forwards
// update requests.
//
// # Endpoints
//
//	GET  records?recordType=<type>          list records of one type
//	GET  records/<id>/owners                ownership history, oldest first
//	POST records/<id>/properties/<name>     submit a property update
//
// Paths resolve under the configured API root, so an api_url of
// http://host:8020/api produces http://host:8020/api/records.
//
// # Data Model
//
//   - Record: identifier, owner and custodian keys, ordered Properties
//   - Property: named attribute with timestamped Updates and a Reporters set
//   - Owner: one (name, timestamp) segment of the provenance chain
//
// Lookups never fail on missing data. Record.Property returns an explicit
// presence flag, Record.PropertyValue takes a fallback, and a nil Reporters
// slice behaves as an empty set.
//
// # Formatting
//
// format.go holds the pure display helpers used by the views: timestamps,
// created/updated times derived from property updates, update counts and
// record id truncation.
//
// # Errors
//
// Transport failures wrap the underlying error with "execute request".
// Non-success statuses return *APIError; errors.Is(err, ErrNotFound) is true
// for 404 responses. Malformed bodies wrap the decoder error with
// "decode response".
package supplychain
