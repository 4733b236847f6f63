package ui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renuIyer/loadtrack/internal/prefs"
	"github.com/renuIyer/loadtrack/internal/state"
	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	API             supplychain.API
	Logger          *slog.Logger
	RecordType      string
	DisplayProperty string
	Start           Route
	Prefs           prefs.Prefs
	PrefsPath       string // empty disables saving

	// Poll cadences; zero uses RecordPollInterval and OwnerPollInterval.
	RecordInterval time.Duration
	OwnerInterval  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	api            supplychain.API
	logger         *slog.Logger
	identity       string
	recordType     string
	property       string
	prefs          prefs.Prefs
	prefsPath      string
	recordInterval time.Duration
	ownerInterval  time.Duration

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	route    Route
	filter   state.Filter
	width    int
	height   int
	ready    bool
	showHelp bool
	now      time.Time

	// Views; only the one matching route is active.
	dashboard *dashboardView
	list      *listView
	detail    *provenanceView
}

var sessionSeq atomic.Uint64

// nextSession returns a fresh activation id. Zero is never returned.
func nextSession() uint64 {
	return sessionSeq.Add(1)
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	recordType := strings.TrimSpace(opts.RecordType)
	if recordType == "" {
		recordType = "load"
	}
	property := strings.TrimSpace(opts.DisplayProperty)
	if property == "" {
		property = "weight"
	}

	p := opts.Prefs
	filter, _ := state.ParseFilter(p.Filter)

	identity := ""
	if opts.API != nil {
		identity = strings.TrimSpace(opts.API.PublicKey())
	}

	m := Model{
		ctx:            ctx,
		api:            opts.API,
		logger:         logger,
		identity:       identity,
		recordType:     recordType,
		property:       property,
		prefs:          p,
		prefsPath:      opts.PrefsPath,
		recordInterval: opts.RecordInterval,
		ownerInterval:  opts.OwnerInterval,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		theme:          GetTheme(p.Theme),
		filter:         filter,
		now:            time.Now(),
		dashboard:      &dashboardView{},
	}
	m.route = opts.Start
	m.buildView(opts.Start)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(headerTickCmd(), m.activateCurrent())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case headerTickMsg:
		m.now = time.Time(msg)
		return m, headerTickCmd()

	case navigateMsg:
		cmd := m.switchTo(msg.route)
		return m, cmd

	case filterChangedMsg:
		m.filter = msg.filter
		m.prefs.Filter = strings.ToLower(msg.filter.String())
		return m, m.savePrefs()
	}

	return m, m.forward(msg)
}

// forward hands non-key messages to the active view.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	switch m.route.Kind {
	case RouteList:
		if m.list != nil {
			return m.list.handleMsg(msg)
		}
	case RouteProvenance:
		if m.detail != nil {
			return m.detail.handleMsg(msg, m.keys)
		}
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	height := max(m.height-chromeHeight, 3)
	switch m.route.Kind {
	case RouteList:
		return m.list.view(m.theme, m.width, height)
	case RouteProvenance:
		return m.detail.view(m.theme, m.width, height)
	default:
		return renderTitledBox(m.theme, "Dashboard", m.dashboard.view(m.theme, m.width), m.width, height, false)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.deactivateAll()
		return m, tea.Quit
	}

	// An open form receives every key, including the global letters.
	if m.route.Kind == RouteProvenance && m.detail != nil && m.detail.formOpen() {
		return m, m.detail.handleKey(msg, m.keys)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.deactivateAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		return m, m.savePrefs()
	case key.Matches(msg, m.keys.ViewDashboard):
		cmd := m.switchTo(DashboardRoute())
		return m, cmd
	case key.Matches(msg, m.keys.ViewList):
		cmd := m.switchTo(ListRoute())
		return m, cmd
	case key.Matches(msg, m.keys.Tab):
		next := DashboardRoute()
		if m.route.Kind == RouteDashboard {
			next = ListRoute()
		}
		cmd := m.switchTo(next)
		return m, cmd
	}

	switch m.route.Kind {
	case RouteList:
		return m, m.list.handleKey(msg, m.keys)
	case RouteProvenance:
		return m, m.detail.handleKey(msg, m.keys)
	}
	return m, nil
}

// switchTo deactivates the current view and activates the one for r.
func (m *Model) switchTo(r Route) tea.Cmd {
	if r.Kind == m.route.Kind && r.Kind != RouteProvenance {
		return nil
	}
	m.deactivateAll()
	m.route = r
	m.buildView(r)
	return m.activateCurrent()
}

func (m *Model) buildView(r Route) {
	switch r.Kind {
	case RouteList:
		m.list = newListView(listOptions{
			API:        m.api,
			Logger:     m.logger,
			Identity:   m.identity,
			RecordType: m.recordType,
			Property:   m.property,
			Filter:     m.filter,
			Interval:   m.recordInterval,
			Keys:       m.keys,
		})
	case RouteProvenance:
		m.detail = newProvenanceView(provenanceOptions{
			API:      m.api,
			Logger:   m.logger,
			Identity: m.identity,
			Route:    r,
			Interval: m.ownerInterval,
			Keys:     m.keys,
		})
	}
}

func (m Model) activateCurrent() tea.Cmd {
	if m.api == nil {
		return nil
	}
	switch m.route.Kind {
	case RouteList:
		return m.list.activate(m.ctx)
	case RouteProvenance:
		return m.detail.activate(m.ctx)
	}
	return nil
}

func (m *Model) deactivateAll() {
	if m.list != nil {
		m.list.deactivate()
		m.list = nil
	}
	if m.detail != nil {
		m.detail.deactivate()
		m.detail = nil
	}
}

// activeFreshness returns the freshness of the polling view, if any.
func (m Model) activeFreshness() (state.Freshness, bool) {
	switch m.route.Kind {
	case RouteList:
		if m.list != nil {
			return m.list.fresh, true
		}
	case RouteProvenance:
		if m.detail != nil {
			return m.detail.fresh, true
		}
	}
	return state.Freshness{}, false
}

func (m Model) contextKeys() contextKeys {
	canSubmit, formOpen := false, false
	if m.route.Kind == RouteProvenance && m.detail != nil {
		canSubmit, formOpen = m.detail.canSubmit(), m.detail.formOpen()
	}
	return m.keys.forRoute(m.route, m.identity != "", canSubmit, formOpen)
}

func (m Model) savePrefs() tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	path, p, logger := m.prefsPath, m.prefs, m.logger
	return func() tea.Msg {
		if err := prefs.Save(path, p); err != nil {
			logger.Warn("save prefs failed", "path", path, "error", err)
		}
		return nil
	}
}

// Commands

func headerTickCmd() tea.Cmd {
	return tea.Tick(HeaderRefresh, func(t time.Time) tea.Msg {
		return headerTickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.deactivateAll()
	}
	return err
}
