package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renuIyer/loadtrack/internal/state"
	"github.com/renuIyer/loadtrack/internal/supplychain"
)

func newTestList(t *testing.T, api *fakeAPI, filter state.Filter) *listView {
	t.Helper()
	v := newListView(listOptions{
		API:        api,
		Identity:   api.key,
		RecordType: "load",
		Property:   "weight",
		Filter:     filter,
		Interval:   time.Hour,
	})
	t.Cleanup(v.deactivate)
	return v
}

// fetchOnce activates v and applies its first poll result.
func fetchOnce(t *testing.T, v *listView) {
	t.Helper()
	msg := runCmd(t, v.activate(context.Background()))
	if _, ok := msg.(recordsMsg); !ok {
		t.Fatalf("first message = %T, want recordsMsg", msg)
	}
	if next := v.handleMsg(msg); next == nil {
		t.Fatal("live result did not re-arm the wait command")
	}
}

func TestListView_EmptySetShowsPlaceholder(t *testing.T) {
	v := newTestList(t, &fakeAPI{}, state.FilterAll)
	fetchOnce(t, v)

	out := plain(v.view(GetTheme("Nightfox"), 120, 30))
	if !strings.Contains(out, noRecordsText) {
		t.Fatalf("view missing %q:\n%s", noRecordsText, out)
	}
	if !strings.Contains(out, "page 1/1") {
		t.Fatalf("view missing single page indicator:\n%s", out)
	}
}

func TestListView_UnauthenticatedHasNoFilters(t *testing.T) {
	api := &fakeAPI{records: []supplychain.Record{
		load("a", "alice", "alice", nil, "10", 2),
		load("b", "bob", "bob", nil, "20", 1),
	}}
	v := newTestList(t, api, state.FilterOwned)
	fetchOnce(t, v)

	if v.filters != nil {
		t.Fatal("unauthenticated list built filter controls")
	}
	out := plain(v.view(GetTheme("Nightfox"), 120, 30))
	if strings.Contains(out, filterAriaLabel) {
		t.Fatalf("filter controls rendered for anonymous viewer:\n%s", out)
	}
	if !strings.Contains(out, "page 1/1") {
		t.Fatalf("paging controls missing:\n%s", out)
	}
	if len(v.records.Filtered()) != 2 {
		t.Fatalf("anonymous list filtered to %d rows, want 2", len(v.records.Filtered()))
	}
	if cmd := v.handleKey(keyPress("f"), DefaultKeyMap()); cmd != nil {
		t.Fatal("f produced a command without filter controls")
	}
}

func TestListView_RendersColumnsAndSortsNewestFirst(t *testing.T) {
	api := &fakeAPI{key: "me", records: []supplychain.Record{
		load("older", "me", "x", nil, "100", 10),
		load("newer", "x", "me", nil, "200", 20),
	}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)

	out := plain(v.view(GetTheme("Nightfox"), 140, 30))
	for _, want := range []string{"Load ID", "Weight", "Created", "Updated", "Updates", filterAriaLabel} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "newer") > strings.Index(out, "older") {
		t.Fatalf("newer record rendered after older:\n%s", out)
	}
}

func TestListView_IgnoresStaleAndPostTeardownResults(t *testing.T) {
	api := &fakeAPI{records: []supplychain.Record{load("a", "", "", nil, "1", 1)}}
	v := newTestList(t, api, state.FilterAll)
	msg := runCmd(t, v.activate(context.Background())).(recordsMsg)

	stale := msg
	stale.Session = msg.Session + 1000
	stale.Value = []supplychain.Record{load("ghost", "", "", nil, "1", 9)}
	if cmd := v.handleMsg(stale); cmd != nil {
		t.Fatal("stale result re-armed the wait command")
	}
	if v.records.Loaded() {
		t.Fatal("stale result mutated the list")
	}

	v.deactivate()
	if cmd := v.handleMsg(msg); cmd != nil {
		t.Fatal("post-teardown result re-armed the wait command")
	}
	if v.records.Loaded() {
		t.Fatal("post-teardown result mutated the list")
	}
}

func TestListView_FetchErrorKeepsDataAndShowsNotice(t *testing.T) {
	api := &fakeAPI{records: []supplychain.Record{load("a", "", "", nil, "1", 1)}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)

	v.handleMsg(recordsMsg{Session: v.session, Err: errors.New("connection refused"), Failures: 1, FetchedAt: time.Now()})
	if len(v.records.All()) != 1 {
		t.Fatalf("error dropped existing rows")
	}
	out := plain(v.view(GetTheme("Nightfox"), 120, 30))
	if !strings.Contains(out, "connection refused") {
		t.Fatalf("notice missing:\n%s", out)
	}

	v.handleKey(keyPress("x"), DefaultKeyMap())
	out = plain(v.view(GetTheme("Nightfox"), 120, 30))
	if strings.Contains(out, "connection refused") {
		t.Fatalf("notice still visible after dismiss:\n%s", out)
	}
}

func TestListView_FilterChangeEmitsMessage(t *testing.T) {
	api := &fakeAPI{key: "me", records: []supplychain.Record{
		load("mine", "me", "x", nil, "1", 2),
		load("theirs", "x", "x", []string{"me"}, "1", 1),
	}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)

	cmd := v.handleKey(keyPress("2"), DefaultKeyMap())
	msg, ok := runCmd(t, cmd).(filterChangedMsg)
	if !ok || msg.filter != state.FilterOwned {
		t.Fatalf("filter message = %#v, want Owned", msg)
	}
	if len(v.records.Filtered()) != 1 || v.records.Filtered()[0].RecordID != "mine" {
		t.Fatalf("Owned filter rows = %v", v.records.Filtered())
	}
	if !strings.Contains(v.title(), "(1/2) Owned") {
		t.Fatalf("title = %q", v.title())
	}

	v.handleKey(keyPress("4"), DefaultKeyMap())
	if len(v.records.Filtered()) != 1 || v.records.Filtered()[0].RecordID != "theirs" {
		t.Fatalf("Reporting filter rows = %v", v.records.Filtered())
	}
}

func TestListView_EnterOpensProvenanceWithPropertySnapshot(t *testing.T) {
	api := &fakeAPI{key: "me", records: []supplychain.Record{
		load("first", "x", "x", []string{"me"}, "5", 2),
		load("second", "x", "x", nil, "6", 1),
	}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)

	keys := DefaultKeyMap()
	v.handleKey(keyPress("j"), keys)
	v.handleKey(keyPress("j"), keys) // stays on the last row
	msg, ok := runCmd(t, v.handleKey(keyPress("enter"), keys)).(navigateMsg)
	if !ok {
		t.Fatalf("enter did not navigate")
	}
	if msg.route.Kind != RouteProvenance || msg.route.RecordID != "second" {
		t.Fatalf("route = %s, want provenance/second", msg.route)
	}
	if msg.route.Property == nil || msg.route.Property.Name != "weight" {
		t.Fatalf("route property = %#v, want weight snapshot", msg.route.Property)
	}
}

func TestListView_CopyID(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	long := strings.Repeat("f", 64)
	v := newTestList(t, &fakeAPI{records: []supplychain.Record{load(long, "", "", nil, "1", 1)}}, state.FilterAll)
	fetchOnce(t, v)

	msg := runCmd(t, v.handleKey(keyPress("y"), DefaultKeyMap()))
	v.handleMsg(msg)
	if copied != long {
		t.Fatalf("copied %q, want the full id", copied)
	}
	if !strings.HasPrefix(v.flash, "Copied ") {
		t.Fatalf("flash = %q", v.flash)
	}
}

func TestListView_KeepsCursorOnRecordAcrossRefresh(t *testing.T) {
	api := &fakeAPI{records: []supplychain.Record{
		load("a", "", "", nil, "1", 3),
		load("b", "", "", nil, "1", 2),
	}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)
	v.handleKey(keyPress("j"), DefaultKeyMap())

	v.handleMsg(recordsMsg{Session: v.session, FetchedAt: time.Now(), Value: []supplychain.Record{
		load("new", "", "", nil, "1", 9),
		load("a", "", "", nil, "1", 3),
		load("b", "", "", nil, "1", 2),
	}})
	if r, ok := v.selected(); !ok || r.RecordID != "b" {
		t.Fatalf("selected = %q, want b", r.RecordID)
	}
}

func TestListView_NarrowTerminalKeepsPlaceholderInsideBox(t *testing.T) {
	for _, key := range []string{"", "me"} {
		v := newTestList(t, &fakeAPI{key: key}, state.FilterAll)
		fetchOnce(t, v)

		for _, width := range []int{40, 50, 60} {
			out := v.view(GetTheme("Nightfox"), width, 20)
			if !strings.Contains(plain(out), noRecordsText) {
				t.Fatalf("key %q width %d: placeholder cut:\n%s", key, width, plain(out))
			}
			for _, line := range strings.Split(out, "\n") {
				if w := lipgloss.Width(line); w > width {
					t.Fatalf("key %q width %d: line %d wide:\n%s", key, width, w, plain(out))
				}
			}
		}
	}
}

func TestListView_TimestampsStayWholeAtEightyColumns(t *testing.T) {
	const ts = 1760431650
	api := &fakeAPI{records: []supplychain.Record{
		load("fish-0123456789abcdef0123456789abcdef", "alice", "bob", nil, "1234", ts),
	}}
	v := newTestList(t, api, state.FilterAll)
	fetchOnce(t, v)

	out := plain(v.view(GetTheme("Nightfox"), 80, 20))
	stamp := supplychain.FormatTimestamp(ts)
	if got := strings.Count(out, stamp); got != 2 {
		t.Fatalf("full timestamp appears %d times, want created and updated:\n%s", got, out)
	}
	if strings.Contains(out, "…") {
		t.Fatalf("cell carries a second truncation marker:\n%s", out)
	}
	if !strings.Contains(out, "fish-012345678...") {
		t.Fatalf("load id not shortened to fit:\n%s", out)
	}
}
