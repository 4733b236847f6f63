package ui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

func weight(reporters ...string) *supplychain.Property {
	return &supplychain.Property{Name: "weight", Value: json.RawMessage(`1200`), Reporters: reporters}
}

func newTestProvenance(t *testing.T, api *fakeAPI, property *supplychain.Property) *provenanceView {
	t.Helper()
	v := newProvenanceView(provenanceOptions{
		API:      api,
		Identity: api.key,
		Route:    ProvenanceRoute("load-7", property),
		Interval: time.Hour,
	})
	t.Cleanup(v.deactivate)
	msg := runCmd(t, v.activate(context.Background()))
	if _, ok := msg.(ownersMsg); !ok {
		t.Fatalf("first message = %T, want ownersMsg", msg)
	}
	v.handleMsg(msg, DefaultKeyMap())
	return v
}

func TestProvenanceView_TitleAndEmptyHistory(t *testing.T) {
	v := newTestProvenance(t, &fakeAPI{}, nil)
	out := plain(v.view(GetTheme("Nightfox"), 100, 20))
	if !strings.Contains(out, "Load load-7") {
		t.Fatalf("title missing:\n%s", out)
	}
	if !strings.Contains(out, noOwnersText) {
		t.Fatalf("empty history placeholder missing:\n%s", out)
	}
}

func TestProvenanceView_RendersOwners(t *testing.T) {
	api := &fakeAPI{owners: []supplychain.Owner{{Name: "Alice", Timestamp: 100}, {AgentID: "02beef", Timestamp: 200}}}
	v := newTestProvenance(t, api, nil)
	out := plain(v.view(GetTheme("Nightfox"), 100, 20))
	for _, want := range []string{"Owner", "Timestamp", "Alice", "02beef", supplychain.FormatTimestamp(100)} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestProvenanceView_FormHiddenWithoutReporterRights(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		property *supplychain.Property
	}{
		{"no property snapshot", "me", nil},
		{"not a reporter", "me", weight("someone")},
		{"anonymous", "", weight("me")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestProvenance(t, &fakeAPI{key: tc.key}, tc.property)
			if v.canSubmit() {
				t.Fatal("canSubmit = true")
			}
			v.handleKey(keyPress("u"), DefaultKeyMap())
			if v.formOpen() {
				t.Fatal("u opened the form")
			}
		})
	}
}

func TestProvenanceView_SubmitUpdate(t *testing.T) {
	api := &fakeAPI{key: "me"}
	v := newTestProvenance(t, api, weight("me"))
	keys := DefaultKeyMap()

	if !v.canSubmit() {
		t.Fatal("reporter cannot submit")
	}
	v.handleKey(keyPress("u"), keys)
	if !v.formOpen() {
		t.Fatal("u did not open the form")
	}

	// Empty submission is rejected in place.
	if cmd := v.handleKey(keyPress("enter"), keys); cmd != nil {
		t.Fatal("empty value produced a submit command")
	}

	for _, r := range "1250" {
		v.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, keys)
	}
	if cmd := v.handleKey(keyPress("enter"), keys); cmd == nil {
		t.Fatal("enter did not submit")
	}

	// Run the request directly instead of unpacking the batch.
	msg := runCmd(t, v.submit("1250")).(submitResultMsg)
	v.handleMsg(msg, keys)
	if v.formOpen() {
		t.Fatal("form still open after result")
	}
	if len(api.submitted) != 1 {
		t.Fatalf("submitted %d requests, want 1", len(api.submitted))
	}
	got := api.submitted[0]
	if got.RecordID != "load-7" || got.Property != "weight" || got.Value != "1250" {
		t.Fatalf("request = %#v", got)
	}
	if !strings.Contains(v.notice, "1250") || v.noticeBad {
		t.Fatalf("notice = %q bad=%v", v.notice, v.noticeBad)
	}
}

func TestProvenanceView_SubmitFailureAndEscape(t *testing.T) {
	api := &fakeAPI{key: "me", submitErr: errors.New("api records/load-7/properties/weight returned status 500")}
	v := newTestProvenance(t, api, weight("me"))
	keys := DefaultKeyMap()

	v.handleKey(keyPress("u"), keys)
	v.handleKey(keyPress("esc"), keys)
	if v.formOpen() {
		t.Fatal("esc did not close the form")
	}

	v.handleKey(keyPress("u"), keys)
	v.handleMsg(runCmd(t, v.submit("1")), keys)
	if !v.noticeBad || !strings.Contains(v.notice, "status 500") {
		t.Fatalf("notice = %q bad=%v", v.notice, v.noticeBad)
	}
}

func TestProvenanceView_BackNavigatesToList(t *testing.T) {
	v := newTestProvenance(t, &fakeAPI{}, nil)
	for _, k := range []string{"esc", "backspace"} {
		msg, ok := runCmd(t, v.handleKey(keyPress(k), DefaultKeyMap())).(navigateMsg)
		if !ok || msg.route.Kind != RouteList {
			t.Fatalf("%s -> %#v, want list route", k, msg)
		}
	}
}

func TestProvenanceView_PagesOwners(t *testing.T) {
	owners := make([]supplychain.Owner, 75)
	for i := range owners {
		owners[i] = supplychain.Owner{Name: "agent", Timestamp: int64(i + 1)}
	}
	v := newTestProvenance(t, &fakeAPI{owners: owners}, nil)

	if got := len(v.rows()); got != 50 {
		t.Fatalf("first page rows = %d, want 50", got)
	}
	v.handleKey(keyPress("]"), DefaultKeyMap())
	if got := len(v.rows()); got != 25 || v.owners.Page() != 1 {
		t.Fatalf("second page rows = %d page=%d, want 25,1", got, v.owners.Page())
	}
	v.handleKey(keyPress("]"), DefaultKeyMap())
	if v.owners.Page() != 1 {
		t.Fatalf("page advanced past the last page: %d", v.owners.Page())
	}
}

func TestProvenanceView_LateResultAfterTeardownIgnored(t *testing.T) {
	v := newTestProvenance(t, &fakeAPI{}, nil)
	session := v.session
	v.deactivate()

	v.handleMsg(ownersMsg{Session: session, Value: []supplychain.Owner{{Name: "late"}}, FetchedAt: time.Now()}, DefaultKeyMap())
	if v.owners.Len() != 0 {
		t.Fatal("late owners result mutated state after teardown")
	}
}

func TestProvenanceView_NarrowTerminalKeepsPlaceholder(t *testing.T) {
	v := newTestProvenance(t, &fakeAPI{}, nil)
	for _, width := range []int{36, 40} {
		out := v.view(GetTheme("Nightfox"), width, 16)
		if !strings.Contains(plain(out), noOwnersText) {
			t.Fatalf("width %d: placeholder cut:\n%s", width, plain(out))
		}
		for _, line := range strings.Split(out, "\n") {
			if w := lipgloss.Width(line); w > width {
				t.Fatalf("width %d: line %d wide:\n%s", width, w, plain(out))
			}
		}
	}
}
