package supplychain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record mirrors a tracked load as returned by GET /records.
type Record struct {
	RecordID   string     `json:"recordId"`
	RecordType string     `json:"recordType"`
	Owner      string     `json:"owner"`
	Custodian  string     `json:"custodian"`
	Final      bool       `json:"final"`
	Properties []Property `json:"properties"`
}

// Property is a named, updatable attribute of a Record.
type Property struct {
	Name      string           `json:"name"`
	DataType  string           `json:"dataType"`
	Value     json.RawMessage  `json:"value"`
	Reporters []string         `json:"reporters"`
	Updates   []PropertyUpdate `json:"updates"`
}

// PropertyUpdate is one timestamped value reported for a Property.
type PropertyUpdate struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
	Reporter  string          `json:"reporter"`
}

// Owner is one segment of a record's ownership history.
type Owner struct {
	Name      string `json:"name"`
	AgentID   string `json:"agentId"`
	Timestamp int64  `json:"timestamp"`
}

// DisplayName prefers the agent name and falls back to the agent key.
func (o Owner) DisplayName() string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	if id := strings.TrimSpace(o.AgentID); id != "" {
		return id
	}
	return "Unknown"
}

// UpdateRequest asks the API to record a new value for a record property.
type UpdateRequest struct {
	RecordID string
	Property string
	Value    string
}

// Property returns the named property and whether the record carries it.
func (r Record) Property(name string) (Property, bool) {
	for _, p := range r.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyValue returns the display value of the named property, or fallback
// when the property is absent or has no value yet.
func (r Record) PropertyValue(name, fallback string) string {
	p, ok := r.Property(name)
	if !ok {
		return fallback
	}
	if v := p.DisplayValue(); v != "" {
		return v
	}
	return fallback
}

// LatestUpdate returns the newest property update timestamp.
func (r Record) LatestUpdate() (int64, bool) {
	var latest int64
	found := false
	for _, p := range r.Properties {
		for _, u := range p.Updates {
			if !found || u.Timestamp > latest {
				latest = u.Timestamp
				found = true
			}
		}
	}
	return latest, found
}

// OldestUpdate returns the oldest property update timestamp, which the list
// treats as the creation time of the record.
func (r Record) OldestUpdate() (int64, bool) {
	var oldest int64
	found := false
	for _, p := range r.Properties {
		for _, u := range p.Updates {
			if !found || u.Timestamp < oldest {
				oldest = u.Timestamp
				found = true
			}
		}
	}
	return oldest, found
}

// UpdateCount totals the updates across every property.
func (r Record) UpdateCount() int {
	n := 0
	for _, p := range r.Properties {
		n += len(p.Updates)
	}
	return n
}

// IsReporter reports whether key may report on at least one property.
func (r Record) IsReporter(key string) bool {
	if key == "" {
		return false
	}
	for _, p := range r.Properties {
		if p.HasReporter(key) {
			return true
		}
	}
	return false
}

// HasReporter reports whether key is in the reporter set. A missing set is
// treated as empty.
func (p Property) HasReporter(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range p.Reporters {
		if r == key {
			return true
		}
	}
	return false
}

// CurrentValue returns the property value, falling back to the newest update
// when the API omits the top-level value.
func (p Property) CurrentValue() json.RawMessage {
	if v := bytes.TrimSpace(p.Value); len(v) > 0 && string(v) != "null" {
		return p.Value
	}
	var latest *PropertyUpdate
	for i := range p.Updates {
		if latest == nil || p.Updates[i].Timestamp >= latest.Timestamp {
			latest = &p.Updates[i]
		}
	}
	if latest == nil {
		return nil
	}
	return latest.Value
}

// DisplayValue renders the current value as plain text.
func (p Property) DisplayValue() string {
	return displayJSON(p.CurrentValue())
}

func displayJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return string(trimmed)
}
