package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renuIyer/loadtrack/internal/poll"
	"github.com/renuIyer/loadtrack/internal/state"
	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

const (
	filterAriaLabel = "Filter Loads"
	noRecordsText   = "No records found"
	loadingText     = "Loading loads..."
)

type recordsMsg poll.Result[[]supplychain.Record]

type filterChangedMsg struct{ filter state.Filter }

type copiedMsg struct {
	session  uint64
	recordID string
	err      error
}

// listView owns one activation of the loads list: its poll task, the fetched
// records and the derived filtered page.
type listView struct {
	api        supplychain.RecordFetcher
	logger     *slog.Logger
	recordType string
	property   string
	interval   time.Duration

	session uint64
	task    *poll.Task[[]supplychain.Record]

	records *state.RecordList
	fresh   state.Freshness
	cursor  int
	filters *filterGroup // nil when the viewer is not authenticated
	pager   pagingButtons
	flash   string
}

type listOptions struct {
	API        supplychain.RecordFetcher
	Logger     *slog.Logger
	Identity   string
	RecordType string
	Property   string
	Filter     state.Filter
	Interval   time.Duration
	Keys       keyMap // zero value uses DefaultKeyMap
}

func newListView(opts listOptions) *listView {
	v := &listView{
		api:        opts.API,
		logger:     opts.Logger,
		recordType: opts.RecordType,
		property:   opts.Property,
		interval:   opts.Interval,
		records:    state.NewRecordList(opts.Identity, opts.Filter),
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}
	if v.interval <= 0 {
		v.interval = RecordPollInterval
	}
	keys := opts.Keys
	if len(keys.NextPage.Keys()) == 0 {
		keys = DefaultKeyMap()
	}
	v.pager = newPagingButtons(v.setPage, keys.PrevPage, keys.NextPage)
	if v.records.Authenticated() {
		options := make([]filterOption, 0, len(state.Filters()))
		for _, f := range state.Filters() {
			options = append(options, filterOption{label: f.String(), activate: v.filterActivator(f)})
		}
		v.filters = newFilterGroup(filterAriaLabel, options, opts.Filter.String(), keys.CycleFilter, keys.SelectFilter)
	}
	v.syncPager()
	return v
}

// activate starts polling. The first fetch happens immediately.
func (v *listView) activate(ctx context.Context) tea.Cmd {
	v.deactivate()
	v.session = nextSession()
	api, recordType := v.api, v.recordType
	v.task = poll.Start(ctx, poll.Options{
		Name:     "records",
		Session:  v.session,
		Interval: v.interval,
		Logger:   v.logger,
	}, func(ctx context.Context) ([]supplychain.Record, error) {
		return api.FetchRecords(ctx, recordType)
	})
	return waitForRecords(v.task)
}

// deactivate stops polling. Results still in flight are dropped.
func (v *listView) deactivate() {
	if v.task != nil {
		v.task.Stop()
		v.task = nil
	}
	v.session = 0
}

func waitForRecords(task *poll.Task[[]supplychain.Record]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-task.Results()
		if !ok {
			return nil
		}
		return recordsMsg(res)
	}
}

func (v *listView) live(session uint64) bool {
	return v.task != nil && session != 0 && session == v.session
}

func (v *listView) handleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recordsMsg:
		if !v.live(msg.Session) {
			return nil
		}
		v.fresh.Record(msg.Err, msg.FetchedAt)
		if msg.Err == nil {
			v.applyRecords(msg.Value)
		}
		return waitForRecords(v.task)
	case copiedMsg:
		if !v.live(msg.session) {
			return nil
		}
		if msg.err != nil {
			v.logger.Warn("copy record id failed", "record", msg.recordID, "error", msg.err)
			v.flash = "Copy failed: " + msg.err.Error()
		} else {
			v.flash = "Copied " + msg.recordID
		}
	}
	return nil
}

// applyRecords installs a fetch result, keeping the cursor on the same record
// when it is still on the page.
func (v *listView) applyRecords(records []supplychain.Record) {
	selectedID := ""
	if r, ok := v.selected(); ok {
		selectedID = r.RecordID
	}
	if !v.records.Apply(records) {
		return
	}
	v.syncPager()
	rows := v.records.PageRecords()
	for i, r := range rows {
		if r.RecordID == selectedID {
			v.cursor = i
			return
		}
	}
	v.clampCursor()
}

func (v *listView) filterActivator(f state.Filter) func() tea.Cmd {
	return func() tea.Cmd {
		v.records.SetFilter(f)
		v.syncPager()
		v.clampCursor()
		return func() tea.Msg { return filterChangedMsg{filter: f} }
	}
}

func (v *listView) setPage(page int) {
	v.records.SetPage(page)
	v.cursor = 0
}

func (v *listView) syncPager() {
	v.pager.sync(v.records.Page(), v.records.MaxPage())
}

func (v *listView) clampCursor() {
	v.cursor = clampIndex(v.cursor, len(v.records.PageRecords())-1)
}

func (v *listView) selected() (supplychain.Record, bool) {
	rows := v.records.PageRecords()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return supplychain.Record{}, false
	}
	return rows[v.cursor], true
}

func (v *listView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if cmd, ok := v.filters.update(msg); ok {
		return cmd
	}
	if v.pager.update(msg) {
		return nil
	}

	rows := len(v.records.PageRecords())
	switch {
	case key.Matches(msg, keys.Down):
		if v.cursor < rows-1 {
			v.cursor++
		}
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keys.Top):
		v.cursor = 0
	case key.Matches(msg, keys.Bottom):
		v.cursor = max(rows-1, 0)
	case key.Matches(msg, keys.Dismiss):
		v.fresh.Dismiss()
		v.flash = ""
	case key.Matches(msg, keys.Open):
		r, ok := v.selected()
		if !ok {
			return nil
		}
		var snapshot *supplychain.Property
		if p, ok := r.Property(v.property); ok {
			snapshot = &p
		}
		return navigate(ProvenanceRoute(r.RecordID, snapshot))
	case key.Matches(msg, keys.CopyID):
		r, ok := v.selected()
		if !ok {
			return nil
		}
		session, id := v.session, r.RecordID
		return func() tea.Msg {
			return copiedMsg{session: session, recordID: id, err: copyToClipboard(id)}
		}
	}
	return nil
}

// title returns "Loads (N)" or "Loads (visible/total) Filter".
func (v *listView) title() string {
	total := len(v.records.All())
	visible := len(v.records.Filtered())
	if v.filters == nil || v.records.Filter() == state.FilterAll {
		return fmt.Sprintf("Loads (%d)", total)
	}
	return fmt.Sprintf("Loads (%d/%d) %s", visible, total, v.filters.Selected())
}

func (v *listView) headers() []string {
	return []string{"Load ID", titleCase(v.property), "Created", "Updated", "Updates"}
}

func (v *listView) rows() [][]string {
	page := v.records.PageRecords()
	rows := make([][]string, 0, len(page))
	for _, r := range page {
		rows = append(rows, []string{
			supplychain.TruncateID(r.RecordID),
			r.PropertyValue(v.property, "-"),
			supplychain.FormatOldest(r),
			supplychain.FormatLatest(r),
			supplychain.FormatUpdateCount(r),
		})
	}
	return rows
}

func (v *listView) view(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	bg := NewBgStyle(theme.SurfaceAlt)
	inner := max(width-2, 0)

	var lines []string

	controls := v.pager.view(theme, theme.SurfaceAlt)
	if v.filters != nil {
		filters := v.filters.view(theme, theme.SurfaceAlt, inner-1)
		gap := inner - lipgloss.Width(filters) - lipgloss.Width(controls) - 2
		if gap >= 2 {
			controls = filters + bg.Spaces(gap) + controls
		} else {
			lines = append(lines, bg.Space()+filters)
		}
	}
	lines = append(lines, bg.Space()+controls)

	if notice, ok := v.fresh.Notice(); ok {
		lines = append(lines, bg.Space()+bg.Render("! "+truncate(notice, inner-16), styles.DangerText)+
			bg.Spaces(2)+bg.Render("x dismiss", styles.FaintText))
	} else if v.flash != "" {
		lines = append(lines, bg.Space()+bg.Render(truncate(v.flash, inner-2), styles.SuccessText))
	}

	noRows := noRecordsText
	if !v.records.Loaded() {
		noRows = loadingText
	}
	tableHeight := height - 2 - len(lines) - 3
	lines = append(lines, renderTable(theme, tableSpec{
		headers:    v.headers(),
		rows:       v.rows(),
		noRowsText: noRows,
		cursor:     v.cursor,
		width:      inner,
		maxRows:    max(tableHeight, 1),
		flexible:   []int{0, 1}, // id and property; timestamps and count stay whole
	}))

	return renderTitledBox(theme, v.title(), strings.Join(lines, "\n"), width, height, true)
}
