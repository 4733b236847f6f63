package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renuIyer/loadtrack/internal/poll"
	"github.com/renuIyer/loadtrack/internal/state"
	"github.com/renuIyer/loadtrack/internal/supplychain"
)

const noOwnersText = "This load has never been owned"

// provenanceAPI is what the provenance view consumes.
type provenanceAPI interface {
	supplychain.OwnerFetcher
	supplychain.UpdateSubmitter
}

type ownersMsg poll.Result[[]supplychain.Owner]

type submitResultMsg struct {
	session uint64
	value   string
	err     error
}

// provenanceView owns one activation of a record's ownership history.
type provenanceView struct {
	api      provenanceAPI
	logger   *slog.Logger
	identity string
	interval time.Duration
	ctx      context.Context

	recordID string
	property *supplychain.Property

	session uint64
	task    *poll.Task[[]supplychain.Owner]

	owners *state.OwnerHistory
	fresh  state.Freshness
	pager  pagingButtons
	form   Modal

	notice    string
	noticeBad bool
}

type provenanceOptions struct {
	API      provenanceAPI
	Logger   *slog.Logger
	Identity string
	Route    Route
	Interval time.Duration
	Keys     keyMap // zero value uses DefaultKeyMap
}

func newProvenanceView(opts provenanceOptions) *provenanceView {
	v := &provenanceView{
		api:      opts.API,
		logger:   opts.Logger,
		identity: strings.TrimSpace(opts.Identity),
		interval: opts.Interval,
		recordID: opts.Route.RecordID,
		property: opts.Route.Property,
		owners:   state.NewOwnerHistory(opts.Route.RecordID),
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}
	if v.interval <= 0 {
		v.interval = OwnerPollInterval
	}
	keys := opts.Keys
	if len(keys.NextPage.Keys()) == 0 {
		keys = DefaultKeyMap()
	}
	v.pager = newPagingButtons(v.owners.SetPage, keys.PrevPage, keys.NextPage)
	v.syncPager()
	return v
}

func (v *provenanceView) activate(ctx context.Context) tea.Cmd {
	v.deactivate()
	v.ctx = ctx
	v.session = nextSession()
	api, id := v.api, v.recordID
	v.task = poll.Start(ctx, poll.Options{
		Name:     "owners",
		Session:  v.session,
		Interval: v.interval,
		Logger:   v.logger.With("record", id),
	}, func(ctx context.Context) ([]supplychain.Owner, error) {
		return api.FetchOwners(ctx, id)
	})
	return waitForOwners(v.task)
}

func (v *provenanceView) deactivate() {
	if v.task != nil {
		v.task.Stop()
		v.task = nil
	}
	v.session = 0
	v.form = nil
}

func waitForOwners(task *poll.Task[[]supplychain.Owner]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-task.Results()
		if !ok {
			return nil
		}
		return ownersMsg(res)
	}
}

func (v *provenanceView) live(session uint64) bool {
	return v.task != nil && session != 0 && session == v.session
}

// canSubmit reports whether the viewer reports on the displayed property.
func (v *provenanceView) canSubmit() bool {
	return v.property != nil && v.property.HasReporter(v.identity)
}

func (v *provenanceView) formOpen() bool {
	return v.form != nil
}

func (v *provenanceView) syncPager() {
	v.pager.sync(v.owners.Page(), v.owners.MaxPage())
}

func (v *provenanceView) handleMsg(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case ownersMsg:
		if !v.live(msg.Session) {
			return nil
		}
		v.fresh.Record(msg.Err, msg.FetchedAt)
		if msg.Err == nil && v.owners.Apply(msg.Value) {
			v.syncPager()
		}
		return waitForOwners(v.task)

	case submitResultMsg:
		if !v.live(msg.session) {
			return nil
		}
		v.form = nil
		if msg.err != nil {
			v.logger.Error("property update failed",
				"record", v.recordID, "property", v.property.Name, "error", msg.err)
			v.notice, v.noticeBad = "Update failed: "+msg.err.Error(), true
			return nil
		}
		v.logger.Info("property update submitted",
			"record", v.recordID, "property", v.property.Name, "value", msg.value)
		v.notice, v.noticeBad = "Submitted "+titleCase(v.property.Name)+" = "+msg.value, false
		return nil
	}

	if v.form != nil {
		var cmd tea.Cmd
		var closed bool
		v.form, cmd, closed = v.form.Update(msg, keys)
		if closed {
			v.form = nil
		}
		return cmd
	}
	return nil
}

func (v *provenanceView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if v.form != nil {
		return v.handleMsg(msg, keys)
	}
	if v.pager.update(msg) {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Back):
		return navigate(ListRoute())
	case key.Matches(msg, keys.Dismiss):
		v.fresh.Dismiss()
		v.notice = ""
	case key.Matches(msg, keys.UpdateProperty):
		if !v.canSubmit() {
			return nil
		}
		form, cmd := newUpdateForm(v.property.Name, v.property.DisplayValue(), v.submit)
		v.form = form
		v.notice = ""
		return cmd
	}
	return nil
}

// submit returns a command that posts value for the displayed property.
func (v *provenanceView) submit(value string) tea.Cmd {
	api, session := v.api, v.session
	parent := v.ctx
	if parent == nil {
		parent = context.Background()
	}
	req := supplychain.UpdateRequest{RecordID: v.recordID, Property: v.property.Name, Value: value}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, SubmitTimeout)
		defer cancel()
		return submitResultMsg{session: session, value: value, err: api.SubmitUpdate(ctx, req)}
	}
}

func (v *provenanceView) title() string {
	return "Load " + v.recordID
}

func (v *provenanceView) rows() [][]string {
	page := v.owners.PageOwners()
	rows := make([][]string, 0, len(page))
	for _, o := range page {
		rows = append(rows, []string{o.DisplayName(), supplychain.FormatTimestamp(o.Timestamp)})
	}
	return rows
}

func (v *provenanceView) view(theme Theme, width, height int) string {
	if v.form != nil {
		return v.form.View(theme, width, height)
	}

	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	bg := NewBgStyle(theme.SurfaceAlt)
	inner := max(width-2, 0)

	var lines []string
	if v.property != nil {
		prop := bg.Render(titleCase(v.property.Name)+":", styles.MutedText) + bg.Space() +
			bg.Render(orDash(v.property.DisplayValue()), styles.Text)
		if v.canSubmit() {
			prop += bg.Spaces(2) + bg.Render("u update", styles.AccentText)
		}
		lines = append(lines, bg.Space()+prop)
	}
	lines = append(lines, bg.Space()+v.pager.view(theme, theme.SurfaceAlt))

	if notice, ok := v.fresh.Notice(); ok {
		lines = append(lines, bg.Space()+bg.Render("! "+truncate(notice, inner-16), styles.DangerText)+
			bg.Spaces(2)+bg.Render("x dismiss", styles.FaintText))
	} else if v.notice != "" {
		style := styles.SuccessText
		if v.noticeBad {
			style = styles.DangerText
		}
		lines = append(lines, bg.Space()+bg.Render(truncate(v.notice, inner-2), style))
	}

	noRows := noOwnersText
	if !v.owners.Loaded() {
		noRows = "Loading ownership history..."
	}
	tableHeight := height - 2 - len(lines) - 3
	lines = append(lines, renderTable(theme, tableSpec{
		headers:    []string{"Owner", "Timestamp"},
		rows:       v.rows(),
		noRowsText: noRows,
		cursor:     -1,
		width:      inner,
		maxRows:    max(tableHeight, 1),
		flexible:   []int{0},
	}))

	return renderTitledBox(theme, v.title(), strings.Join(lines, "\n"), width, height, true)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
