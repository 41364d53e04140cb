package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"fskanban/internal/application/dto"
	"fskanban/internal/daemon"
	"fskanban/internal/di"
)

// Model represents the TUI state
type Model struct {
	board         *dto.BoardDTO
	container     *di.Container
	notifications <-chan *daemon.Notification
	help          help.Model

	focusedRow    int // which row is currently selected
	focusedColumn int // which cell of the row is selected
	focusedTask   int // which task in the current cell is selected
	rowOffset     int // first row drawn
	pendingDelete int // task id waiting for a second delete key press

	status string
	width  int
	height int
}

// NewModel creates a new TUI model. notifications may be nil, in which case
// the board is polled every tui.refresh.
func NewModel(board *dto.BoardDTO, container *di.Container, notifications <-chan *daemon.Notification) Model {
	return Model{
		board:         board,
		container:     container,
		notifications: notifications,
		help:          help.New(),
	}
}

// tickMsg is sent when the ticker fires
type tickMsg time.Time

// boardLoadedMsg carries a reloaded board
type boardLoadedMsg struct {
	board *dto.BoardDTO
	err   error
}

// notificationMsg carries a daemon notification. ok is false once the
// daemon connection is gone.
type notificationMsg struct {
	notification *daemon.Notification
	ok           bool
}

// doTick returns a command that waits for a tick
func (m Model) doTick() tea.Cmd {
	interval := m.container.Config.TUI.Refresh
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForNotification blocks on the next daemon notification
func waitForNotification(ch <-chan *daemon.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		return notificationMsg{notification: n, ok: ok}
	}
}

// loadBoard reads the board from disk, skipping the repository cache
func loadBoard(container *di.Container) tea.Cmd {
	return func() tea.Msg {
		container.BoardRepo.Invalidate()
		board, err := container.GetBoardUseCase.Execute(context.Background())
		return boardLoadedMsg{board: board, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.notifications != nil {
		return waitForNotification(m.notifications)
	}
	return m.doTick()
}

// currentRow returns the focused row, or nil on an empty board
func (m Model) currentRow() *dto.RowDTO {
	if m.focusedRow < 0 || m.focusedRow >= len(m.board.Rows) {
		return nil
	}
	return &m.board.Rows[m.focusedRow]
}

// currentCell returns the focused cell, or nil on an empty board
func (m Model) currentCell() *dto.CellDTO {
	row := m.currentRow()
	if row == nil || m.focusedColumn < 0 || m.focusedColumn >= len(row.Cells) {
		return nil
	}
	return &row.Cells[m.focusedColumn]
}

// Helper to get task count in current cell
func (m Model) currentCellTaskCount() int {
	cell := m.currentCell()
	if cell == nil {
		return 0
	}
	return len(cell.Tasks)
}

// Helper to get current task
func (m Model) currentTask() *dto.TaskDTO {
	cell := m.currentCell()
	if cell == nil || m.focusedTask < 0 || m.focusedTask >= len(cell.Tasks) {
		return nil
	}
	return &cell.Tasks[m.focusedTask]
}

// clampFocus keeps every focus index inside the board after it changed
func (m *Model) clampFocus() {
	if m.focusedRow >= len(m.board.Rows) {
		m.focusedRow = len(m.board.Rows) - 1
	}
	if m.focusedRow < 0 {
		m.focusedRow = 0
	}
	if m.focusedColumn >= len(m.board.Columns) {
		m.focusedColumn = len(m.board.Columns) - 1
	}
	if m.focusedColumn < 0 {
		m.focusedColumn = 0
	}

	taskCount := m.currentCellTaskCount()
	if taskCount == 0 {
		m.focusedTask = 0
	} else if m.focusedTask >= taskCount {
		m.focusedTask = taskCount - 1
	}

	if m.rowOffset > m.focusedRow {
		m.rowOffset = m.focusedRow
	}
}
