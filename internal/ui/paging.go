package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renuIyer/loadtrack/internal/state"
)

// pagingButtons wraps a paginator and reports page changes through setPage.
type pagingButtons struct {
	model   paginator.Model
	setPage func(page int)
}

func newPagingButtons(setPage func(page int), prev, next key.Binding) pagingButtons {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = state.PageSize
	p.ArabicFormat = "page %d/%d"
	p.KeyMap = paginator.KeyMap{PrevPage: prev, NextPage: next}
	p.TotalPages = 1
	return pagingButtons{model: p, setPage: setPage}
}

// sync mirrors the owning view's page bounds.
func (b *pagingButtons) sync(current, maxPage int) {
	b.model.TotalPages = maxPage + 1
	b.model.Page = clampIndex(current, maxPage)
}

// update handles paging keys and calls setPage with the clamped target page.
func (b *pagingButtons) update(msg tea.KeyMsg) bool {
	if !key.Matches(msg, b.model.KeyMap.PrevPage, b.model.KeyMap.NextPage) {
		return false
	}
	before := b.model.Page
	b.model, _ = b.model.Update(msg)
	if b.model.Page == before {
		return true
	}
	target := clampIndex(b.model.Page, b.model.TotalPages-1)
	b.model.Page = target
	if b.setPage != nil {
		b.setPage(target)
	}
	return true
}

func (b pagingButtons) view(theme Theme, bgColor string) string {
	styles := theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	prev, next := styles.AccentText, styles.AccentText
	if b.model.OnFirstPage() {
		prev = styles.FaintText
	}
	if b.model.OnLastPage() {
		next = styles.FaintText
	}
	return bg.Join([]string{
		bg.Render("[ prev", prev),
		bg.Render(b.model.View(), styles.MutedText),
		bg.Render("next ]", next),
	}, " ")
}

func clampIndex(index, last int) int {
	return max(0, min(index, last))
}
