package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fskanban/internal/application/dto"
)

const cellWidth = 28

var (
	rowTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cellStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Width(cellWidth).
			Padding(0, 1)
	columnTitleStyle = lipgloss.NewStyle().Bold(true)
	taskIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderBoard draws each row as a line of cells, one per column
func RenderBoard(board *dto.BoardDTO) string {
	if len(board.Rows) == 0 {
		return "The board is empty. Add a row with: fskanban row create <title>"
	}

	var b strings.Builder
	for i, row := range board.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rowTitleStyle.Render(fmt.Sprintf("%s #%d", row.Title, row.ID)))
		b.WriteString("\n")

		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, renderCell(cell))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(cell dto.CellDTO) string {
	lines := []string{columnTitleStyle.Render(fmt.Sprintf("%s (%d)", cell.ColumnName, len(cell.Tasks)))}
	for _, t := range cell.Tasks {
		lines = append(lines, taskIDStyle.Render(fmt.Sprintf("#%d", t.ID))+" "+truncate(t.Title, cellWidth-6))
	}
	return cellStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
