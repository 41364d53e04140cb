package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const newTaskTitle = "New task"

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(loadBoard(m.container), m.doTick())

	case notificationMsg:
		if !msg.ok {
			// Daemon went away, fall back to polling
			m.notifications = nil
			m.status = "daemon disconnected, polling for changes"
			return m, tea.Batch(loadBoard(m.container), m.doTick())
		}
		if n := len(msg.notification.Repairs); n > 0 {
			m.status = fmt.Sprintf("daemon repaired %d duplicate id(s)", n)
		}
		return m, tea.Batch(loadBoard(m.container), waitForNotification(m.notifications))

	case boardLoadedMsg:
		m.applyBoard(msg)
		return m, nil

	case tea.KeyMsg:
		if !key.Matches(msg, keys.Delete) {
			m.pendingDelete = 0
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Left):
			m.moveFocusColumn(-1)

		case key.Matches(msg, keys.Right):
			m.moveFocusColumn(1)

		case key.Matches(msg, keys.Up):
			if m.focusedTask > 0 {
				m.focusedTask--
			}

		case key.Matches(msg, keys.Down):
			if m.focusedTask < m.currentCellTaskCount()-1 {
				m.focusedTask++
			}

		case key.Matches(msg, keys.NextRow):
			m.moveFocusRow(1)

		case key.Matches(msg, keys.PrevRow):
			m.moveFocusRow(-1)

		case key.Matches(msg, keys.Move):
			m.moveTask(1)

		case key.Matches(msg, keys.MoveBack):
			m.moveTask(-1)

		case key.Matches(msg, keys.Add):
			m.addTask()

		case key.Matches(msg, keys.Delete):
			m.deleteTask()

		case key.Matches(msg, keys.Refresh):
			m.reload()

		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

// applyBoard swaps in a reloaded board, keeping focus where it can
func (m *Model) applyBoard(msg boardLoadedMsg) {
	if msg.err != nil {
		m.status = fmt.Sprintf("reload failed: %v", msg.err)
		return
	}
	m.board = msg.board
	m.clampFocus()
}

// reload refreshes the board synchronously
func (m *Model) reload() {
	m.applyBoard(loadBoard(m.container)().(boardLoadedMsg))
}

func (m *Model) moveFocusColumn(delta int) {
	target := m.focusedColumn + delta
	if target < 0 || target >= len(m.board.Columns) {
		return
	}
	m.focusedColumn = target
	m.focusedTask = 0
	m.clampFocus()
}

func (m *Model) moveFocusRow(delta int) {
	target := m.focusedRow + delta
	if target < 0 || target >= len(m.board.Rows) {
		return
	}
	m.focusedRow = target
	m.focusedTask = 0
	m.clampFocus()
}

// moveTask moves the focused task to the end of the neighbouring cell
func (m *Model) moveTask(delta int) {
	task := m.currentTask()
	if task == nil {
		return
	}

	target := m.focusedColumn + delta
	if target < 0 || target >= len(m.board.Columns) {
		return
	}
	column := m.board.Columns[target]
	row := m.currentRow()

	_, err := m.container.BoardService.MoveTask(context.Background(), task.ID, column.ID, row.ID, -1)
	if err != nil {
		m.status = fmt.Sprintf("move failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("moved #%d to %s", task.ID, column.Title)

	m.reload()
	m.focusedColumn = target
	m.focusedTask = m.currentCellTaskCount() - 1
	m.clampFocus()
}

// addTask appends a task to the focused cell
func (m *Model) addTask() {
	row := m.currentRow()
	if row == nil {
		m.status = "the board has no rows, add one with: fskanban row create <title>"
		return
	}
	column := m.board.Columns[m.focusedColumn]

	_, task, err := m.container.BoardService.CreateTask(context.Background(), row.ID, column.ID, newTaskTitle)
	if err != nil {
		m.status = fmt.Sprintf("add failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("added #%d, rename it with: fskanban task rename %d <title>", task.ID, task.ID)

	m.reload()
	m.focusedTask = m.currentCellTaskCount() - 1
	m.clampFocus()
}

// deleteTask removes the focused task on the second press
func (m *Model) deleteTask() {
	task := m.currentTask()
	if task == nil {
		return
	}
	if m.pendingDelete != task.ID {
		m.pendingDelete = task.ID
		m.status = fmt.Sprintf("press d again to delete #%d %s", task.ID, task.Title)
		return
	}
	m.pendingDelete = 0

	if _, err := m.container.BoardService.DeleteTask(context.Background(), task.ID); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("deleted #%d", task.ID)

	m.reload()
}
