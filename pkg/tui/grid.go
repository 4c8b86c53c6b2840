package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MakerMaker19/countryinfo/pkg/country"
)

const (
	// Below this width the grid collapses to a single column.
	twoColumnMinWidth = 60
	defaultCellWidth  = 38
	minCellWidth      = 20
)

// renderGrid lays the fields out in one or two columns depending on the
// terminal width. A width of 0 means "not known yet" and uses two columns.
func renderGrid(fields []country.Field, width int, st Styles) string {
	cols, cellWidth := gridShape(width)

	cells := make([]string, 0, len(fields))
	for _, f := range fields {
		cells = append(cells, renderCell(f, cellWidth, st))
	}

	rows := make([]string, 0, (len(cells)+cols-1)/cols)
	for i := 0; i < len(cells); i += cols {
		end := i + cols
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func gridShape(width int) (cols, cellWidth int) {
	switch {
	case width == 0:
		return 2, defaultCellWidth
	case width < twoColumnMinWidth:
		return 1, max(width-4, minCellWidth)
	default:
		return 2, max((width-4)/2, minCellWidth)
	}
}

func renderCell(f country.Field, width int, st Styles) string {
	value := st.Value.Render(f.Value)
	if f.Link != "" {
		value = lipgloss.JoinVertical(lipgloss.Left,
			st.Link.Render(f.Value),
			st.Muted.Render(f.Link),
		)
	}
	return st.Cell.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, st.Label.Render(f.Label), value),
	)
}
