package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const dashboardMarkdown = `# loadtrack

**Blockchain-backed load provenance.**

Every load tracked here lives on a distributed ledger. Owners, custodians and
authorized reporters append updates to its properties, and every change is
signed and kept forever.

## What you can do

- **Loads**: browse every tracked load, newest activity first. Filter to the
  loads you own, hold in custody, or report on.
- **Provenance**: open a load to follow its chain of ownership, refreshed live.
- **Report**: when you are an authorized reporter for a load's property,
  submit a new reading straight from its provenance page.

Press **l** to open the loads list.
`

// dashboardView renders the static product description. The rendered text is
// cached per width and markdown style.
type dashboardView struct {
	width    int
	style    string
	rendered string
}

func (d *dashboardView) view(theme Theme, width int) string {
	wrap := max(width-4, 20)
	if d.rendered != "" && d.width == wrap && d.style == theme.Markdown {
		return d.rendered
	}
	d.width, d.style = wrap, theme.Markdown
	d.rendered = renderMarkdown(dashboardMarkdown, theme.Markdown, wrap)
	return d.rendered
}

// renderMarkdown returns glamour output, or the source text when rendering fails.
func renderMarkdown(content, style string, wrap int) string {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
