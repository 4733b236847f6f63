package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterOption is one chip of a filterGroup.
type filterOption struct {
	label    string
	activate func() tea.Cmd
}

// filterGroup renders mutually exclusive filter chips. Selecting a chip
// invokes its activation callback.
type filterGroup struct {
	ariaLabel string
	options   []filterOption
	selected  int

	cycleKey  key.Binding // next chip
	selectKey key.Binding // digit keys, 1-based chip index
}

func newFilterGroup(ariaLabel string, options []filterOption, initial string, cycleKey, selectKey key.Binding) *filterGroup {
	g := &filterGroup{ariaLabel: ariaLabel, options: options, cycleKey: cycleKey, selectKey: selectKey}
	for i, opt := range options {
		if strings.EqualFold(opt.label, initial) {
			g.selected = i
			break
		}
	}
	return g
}

// Selected returns the label of the active chip.
func (g *filterGroup) Selected() string {
	if g == nil || len(g.options) == 0 {
		return ""
	}
	return g.options[g.selected].label
}

// update handles the cycle and select bindings. The bool reports whether the
// key was consumed.
func (g *filterGroup) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if g == nil || len(g.options) == 0 {
		return nil, false
	}
	switch {
	case key.Matches(msg, g.cycleKey):
		return g.choose((g.selected + 1) % len(g.options)), true
	case key.Matches(msg, g.selectKey):
		n, err := strconv.Atoi(msg.String())
		if err != nil || n < 1 || n > len(g.options) {
			return nil, false
		}
		return g.choose(n - 1), true
	}
	return nil, false
}

func (g *filterGroup) choose(index int) tea.Cmd {
	if index == g.selected {
		return nil
	}
	g.selected = index
	if act := g.options[index].activate; act != nil {
		return act()
	}
	return nil
}

// view renders "Filter Loads: 1 All 2 Owned ...". With a positive width it
// drops the label, then the unselected chips, until the row fits.
func (g *filterGroup) view(theme Theme, bgColor string, width int) string {
	if g == nil || len(g.options) == 0 {
		return ""
	}
	styles := theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	label := bg.Render(g.ariaLabel+":", styles.MutedText)
	chips := make([]string, 0, len(g.options))
	for i, opt := range g.options {
		text := strconv.Itoa(i+1) + " " + opt.label
		if i == g.selected {
			chips = append(chips, styles.ChipStyle(opt.label).Render(text))
			continue
		}
		chips = append(chips, bg.Render(text, styles.FaintText))
	}

	full := bg.Join(append([]string{label}, chips...), " ")
	if width <= 0 || lipgloss.Width(full) <= width {
		return full
	}
	if unlabeled := bg.Join(chips, " "); lipgloss.Width(unlabeled) <= width {
		return unlabeled
	}
	return chips[g.selected]
}
