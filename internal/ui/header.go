package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renuIyer/loadtrack/internal/state"
	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// renderHeader renders the status bar: logo, view, identity, record type and
// data freshness.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render("loadtrack", styles.Logo),
		bg.Render(m.viewName(), styles.Text.Bold(true)),
	}

	identity := "anonymous"
	identityStyle := styles.FaintText
	if m.identity != "" {
		identity = shortKey(m.identity)
		identityStyle = styles.AccentText
	}
	parts = append(parts, bg.Render("Key:", styles.MutedText)+bg.Space()+bg.Render(identity, identityStyle))

	if !compact {
		parts = append(parts, bg.Render("Type:", styles.MutedText)+bg.Space()+bg.Render(m.recordType, styles.Text))
	}

	if fresh, ok := m.activeFreshness(); ok {
		parts = append(parts, m.renderFreshness(fresh, styles, bg))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderFreshness(fresh state.Freshness, styles Styles, bg BgStyle) string {
	if fresh.IsOffline() {
		label := "● " + classifyConnectionError(fresh.LastError)
		out := bg.Render(label, styles.DangerText)
		if !fresh.LastSuccess.IsZero() {
			out += bg.Space() + bg.Render("last ok "+supplychain.FormatRelative(fresh.LastSuccess, m.now), styles.MutedText)
		}
		return out + bg.Space() + bg.Render("Retrying...", styles.WarningText.Bold(true))
	}
	if fresh.LastSuccess.IsZero() {
		return bg.Render("Connecting...", styles.WarningText.Bold(true))
	}
	return bg.Render("● LIVE", styles.SuccessText) + bg.Space() +
		bg.Render("refreshed "+supplychain.FormatRelative(fresh.LastSuccess, m.now), styles.MutedText)
}

func (m Model) viewName() string {
	switch m.route.Kind {
	case RouteList:
		return "Loads"
	case RouteProvenance:
		return "Provenance"
	default:
		return "Dashboard"
	}
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *supplychain.APIError
	if errors.As(err, &apiErr) {
		if errors.Is(err, supplychain.ErrNotFound) {
			return "NOT FOUND"
		}
		return "API ERROR"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the short help for the active route plus the
// theme indicator.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	h := m.help
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	h.Width = max(m.width-lipgloss.Width(m.theme.Name)-6, 0)

	bar := h.ShortHelpView(m.contextKeys().ShortHelp())
	bar += bg.Spaces(2) + bg.Render("T", styles.AccentText) + bg.Render(":", styles.FaintText) +
		bg.Render(m.theme.Name, styles.FaintText)
	return styles.Header.Width(m.width).Render(bar)
}

// headerTick re-renders relative refresh times.
type headerTickMsg time.Time
