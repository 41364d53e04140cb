package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fskanban/internal/application/dto"
	"fskanban/tui/style"
)

const minCellWidth = 16

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	footer := m.renderFooter()
	if len(m.board.Rows) == 0 {
		empty := style.StatusStyle.Render("The board is empty. Add a row with: fskanban row create <title>")
		return lipgloss.JoinVertical(lipgloss.Left, empty, footer)
	}

	// Each cell has 2 border chars + 2 padding
	numColumns := len(m.board.Columns)
	cellWidth := (m.width - numColumns*4) / numColumns
	if cellWidth < minCellWidth {
		cellWidth = minCellWidth
	}

	available := m.height - lipgloss.Height(footer)
	rows := m.visibleRows(cellWidth, available)

	return lipgloss.JoinVertical(lipgloss.Left, append(rows, footer)...)
}

// visibleRows renders rows from the scroll offset until the height is used
// up. The focused row is always drawn.
func (m Model) visibleRows(cellWidth, available int) []string {
	render := func(start int) ([]string, bool) {
		var out []string
		used := 0
		focused := false
		for i := start; i < len(m.board.Rows); i++ {
			block := m.renderRow(m.board.Rows[i], i, cellWidth)
			h := lipgloss.Height(block)
			if len(out) > 0 && used+h > available {
				break
			}
			out = append(out, block)
			used += h
			if i == m.focusedRow {
				focused = true
			}
		}
		return out, focused
	}

	start := m.rowOffset
	if start > m.focusedRow {
		start = m.focusedRow
	}
	rows, ok := render(start)
	if !ok {
		rows, _ = render(m.focusedRow)
	}
	return rows
}

// renderRow renders a row title above its cells
func (m Model) renderRow(row dto.RowDTO, rowIndex int, cellWidth int) string {
	title := style.RowTitleStyle.Render(fmt.Sprintf("%s #%d", row.Title, row.ID))

	cells := make([]string, 0, len(row.Cells))
	for i, cell := range row.Cells {
		focused := rowIndex == m.focusedRow && i == m.focusedColumn
		cells = append(cells, m.renderCell(cell, cellWidth, focused))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// renderCell renders one cell and its tasks
func (m Model) renderCell(cell dto.CellDTO, width int, focused bool) string {
	lines := []string{style.CellTitleStyle.Render(fmt.Sprintf("%s (%d)", cell.ColumnName, len(cell.Tasks)))}

	for i, task := range cell.Tasks {
		line := fmt.Sprintf("#%d %s", task.ID, truncate(task.Title, width-len(fmt.Sprint(task.ID))-2))
		if focused && i == m.focusedTask {
			lines = append(lines, style.SelectedTaskStyle.Render(line))
		} else {
			lines = append(lines, style.TaskStyle.Render(line))
		}
	}

	if len(cell.Tasks) == 0 {
		lines = append(lines, style.EmptyStyle.Render("(empty)"))
	}

	content := strings.Join(lines, "\n")
	if focused {
		return style.FocusedCellStyle.Width(width).Render(content)
	}
	return style.CellStyle.Width(width).Render(content)
}

// renderFooter renders the status line and key help
func (m Model) renderFooter() string {
	helpView := style.HelpStyle.Render(m.help.View(keys))
	if m.status == "" {
		return helpView
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.StatusStyle.Render(m.status), helpView)
}

func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
