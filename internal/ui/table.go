package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// tableSpec describes one render of the shared table primitive.
type tableSpec struct {
	headers    []string
	rows       [][]string
	noRowsText string
	cursor     int   // highlighted row, -1 for none
	width      int   // total width available, 0 for natural widths
	maxRows    int   // visible rows, 0 for all
	flexible   []int // columns allowed to shrink, nil for all
}

const (
	// minColumnWidth is the narrowest a flexible column is squeezed to.
	minColumnWidth = 6

	// cellPadding is the horizontal padding of TableHeader and TableCell.
	cellPadding = 2

	ellipsis = "..."
)

// renderTable renders headers and rows. Zero rows render the header and one
// full-width line holding noRowsText. It keeps no state between calls.
func renderTable(theme Theme, spec tableSpec) string {
	styles := theme.Styles()

	widths := columnWidths(spec.headers, spec.rows, spec.width, spec.flexible)
	columns := make([]table.Column, len(widths))
	for i, w := range widths {
		columns[i] = table.Column{Title: fitCell(spec.headers[i], w), Width: w}
	}
	tableRows := make([]table.Row, len(spec.rows))
	for i, row := range spec.rows {
		row = padRow(row, len(columns))
		cells := make(table.Row, len(columns))
		for j, cell := range row {
			cells[j] = fitCell(cell, widths[j])
		}
		tableRows[i] = cells
	}

	cursor := spec.cursor
	if len(tableRows) == 0 {
		cursor = -1
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(cursor >= 0),
	)
	tStyles := table.DefaultStyles()
	tStyles.Header = styles.TableHeader
	tStyles.Cell = styles.TableCell
	if cursor >= 0 {
		tStyles.Selected = styles.Selected.Bold(true)
	} else {
		tStyles.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(tStyles)
	headerHeight := lipgloss.Height(tStyles.Header.Render("x"))

	if len(tableRows) == 0 {
		header := strings.Split(t.View(), "\n")
		header = header[:min(headerHeight, len(header))]
		text := spec.noRowsText
		if spec.width > 0 {
			text = fitCell(text, max(spec.width-cellPadding, 1))
		}
		return strings.Join(header, "\n") + "\n" + styles.TableCell.Render(text)
	}

	visible := len(tableRows)
	if spec.maxRows > 0 && visible > spec.maxRows {
		visible = spec.maxRows
	}
	t.SetHeight(visible + headerHeight)
	if cursor < len(tableRows) {
		t.SetCursor(cursor)
	}
	return t.View()
}

// columnWidths sizes each column to its widest cell. When the table does not
// fit width, the widest flexible columns shrink down to minColumnWidth and
// then trailing columns are dropped. The result may hold fewer entries than
// headers.
func columnWidths(headers []string, rows [][]string, width int, flexible []int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], ansi.StringWidth(row[i]))
			}
		}
	}
	if width <= 0 || len(widths) == 0 {
		return widths
	}
	if flexible == nil {
		flexible = make([]int, len(widths))
		for i := range flexible {
			flexible[i] = i
		}
	}

	for tableWidth(widths) > width {
		i := widestFlexible(widths, flexible)
		if i < 0 {
			break
		}
		widths[i]--
	}
	for len(widths) > 1 && tableWidth(widths) > width {
		widths = widths[:len(widths)-1]
	}
	if tableWidth(widths) > width {
		widths[0] = max(width-cellPadding, 1)
	}
	return widths
}

// widestFlexible returns the widest flexible column still above
// minColumnWidth, or -1. Ties go to the earlier entry of flexible.
func widestFlexible(widths []int, flexible []int) int {
	best := -1
	for _, i := range flexible {
		if i < 0 || i >= len(widths) || widths[i] <= minColumnWidth {
			continue
		}
		if best < 0 || widths[i] > widths[best] {
			best = i
		}
	}
	return best
}

func tableWidth(widths []int) int {
	return sum(widths) + cellPadding*len(widths)
}

// fitCell shortens value to width with a single "..." marker. A value that
// already ends in the marker is not marked twice.
func fitCell(value string, width int) string {
	if ansi.StringWidth(value) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return ansi.Truncate(value, width, "")
	}
	return ansi.Truncate(strings.TrimSuffix(value, ellipsis), width, ellipsis)
}

func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
