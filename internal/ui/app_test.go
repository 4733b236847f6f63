package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renuIyer/loadtrack/internal/prefs"
	"github.com/renuIyer/loadtrack/internal/state"
)

func newTestModel(t *testing.T, api *fakeAPI, start Route) Model {
	t.Helper()
	m := New(Options{
		Context:        context.Background(),
		API:            api,
		Start:          start,
		Prefs:          prefs.Default(),
		RecordInterval: time.Hour,
		OwnerInterval:  time.Hour,
	})
	m.activateCurrent()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(Options{Start: DashboardRoute()})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}

func TestModel_StartsOnList(t *testing.T) {
	m := newTestModel(t, &fakeAPI{key: "02abcdef0123456789"}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	out := plain(m.View())
	for _, want := range []string{"loadtrack", "Loads", "02abcdef…456789", "Connecting..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestModel_SwitchingViewsStopsPolling(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	task := m.list.task
	if task == nil {
		t.Fatal("list task not started")
	}

	m, _ = update(t, m, keyPress("d"))
	if m.route.Kind != RouteDashboard || m.list != nil {
		t.Fatalf("route = %v list=%v, want dashboard and no list", m.route, m.list)
	}
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("list task still running after leaving the list")
	}
	if !strings.Contains(plain(m.View()), "Dashboard") {
		t.Fatal("dashboard not rendered")
	}

	m, cmd := update(t, m, keyPress("tab"))
	if m.route.Kind != RouteList || m.list == nil || cmd == nil {
		t.Fatalf("tab from dashboard -> %v, want list with activation", m.route)
	}
}

func TestModel_SameRouteIsNoop(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	list := m.list
	m, cmd := update(t, m, keyPress("l"))
	if cmd != nil || m.list != list {
		t.Fatal("pressing l on the list rebuilt the view")
	}
}

func TestModel_NavigateToProvenance(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	m, cmd := update(t, m, navigateMsg{route: ProvenanceRoute("load-9", nil)})
	if m.route.Kind != RouteProvenance || m.detail == nil || m.list != nil {
		t.Fatalf("route = %v, want provenance only", m.route)
	}
	if cmd == nil {
		t.Fatal("provenance activation returned no command")
	}
	if !strings.Contains(plain(m.View()), "Load load-9") {
		t.Fatal("provenance title missing")
	}

	m, _ = update(t, m, keyPress("esc"))
	if m.route.Kind != RouteProvenance {
		t.Fatal("esc should go through a navigate command, not switch inline")
	}
}

func TestModel_FilterChangeCarriesAcrossRebuild(t *testing.T) {
	m := newTestModel(t, &fakeAPI{key: "me"}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	m, _ = update(t, m, filterChangedMsg{filter: state.FilterCustodian})
	if m.filter != state.FilterCustodian || m.prefs.Filter != "custodian" {
		t.Fatalf("filter = %v prefs=%q", m.filter, m.prefs.Filter)
	}

	m, _ = update(t, m, keyPress("d"))
	m, _ = update(t, m, keyPress("l"))
	if got := m.list.records.Filter(); got != state.FilterCustodian {
		t.Fatalf("rebuilt list filter = %v, want Custodian", got)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Start: DashboardRoute(), Prefs: prefs.Default(), PrefsPath: path})

	m, cmd := update(t, m, keyPress("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	runCmd(t, cmd)

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, ListRoute())
	t.Cleanup(func() { m.deactivateAll() })
	m, _ = update(t, m, keyPress("?"))
	out := plain(m.View())
	for _, want := range []string{"Keyboard Shortcuts", "Navigation", "General"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
	m, cmd := update(t, m, keyPress("q"))
	if m.showHelp || cmd != nil {
		t.Fatal("any key should only close the help overlay")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, &fakeAPI{}, ListRoute())
		t.Cleanup(func() { m.deactivateAll() })
		task := m.list.task
		m, cmd := update(t, m, k)
		if _, ok := runCmd(t, cmd).(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", k)
		}
		if m.list != nil {
			t.Fatalf("%s left the list active", k)
		}
		<-task.Done()
	}
}

func TestModel_OpenFormCapturesGlobalKeys(t *testing.T) {
	m := newTestModel(t, &fakeAPI{key: "me"}, ProvenanceRoute("load-1", weight("me")))
	t.Cleanup(func() { m.deactivateAll() })
	m, _ = update(t, m, keyPress("u"))
	if !m.detail.formOpen() {
		t.Fatal("u did not open the form")
	}

	for _, k := range []string{"q", "d", "T"} {
		m, _ = update(t, m, keyPress(k))
	}
	if m.route.Kind != RouteProvenance || m.theme.Name != "Nightfox" {
		t.Fatal("global keys escaped the open form")
	}
	form := m.detail.form.(*updateForm)
	if got := form.input.Value(); got != "qdT" {
		t.Fatalf("form input = %q, want qdT", got)
	}

	m, _ = update(t, m, keyPress("esc"))
	if m.detail.formOpen() {
		t.Fatal("esc did not close the form")
	}
}

func TestRoute_StringRoundTrip(t *testing.T) {
	for _, r := range []Route{DashboardRoute(), ListRoute(), ProvenanceRoute("load 1", nil)} {
		got, ok := ParseRoute(r.String())
		if !ok || got.Kind != r.Kind || got.RecordID != r.RecordID {
			t.Fatalf("ParseRoute(%q) = %v,%v", r.String(), got, ok)
		}
	}
	for _, bad := range []string{"provenance/", "settings"} {
		if _, ok := ParseRoute(bad); ok {
			t.Fatalf("ParseRoute(%q) accepted", bad)
		}
	}
}
