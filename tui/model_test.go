package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fskanban/internal/application/dto"
	"fskanban/internal/daemon"
	"fskanban/internal/di"
	"fskanban/internal/domain/entity"
	"fskanban/internal/infrastructure/config"
)

// newTestModel builds a board with one row (id 1) holding two To Do
// tasks: 2 "Write docs" and 3 "Fix login".
func newTestModel(t *testing.T, withTasks bool) (Model, *di.Container) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Log.Level = "error"

	c, err := di.InitializeContainer(cfg)
	if err != nil {
		t.Fatalf("init container: %v", err)
	}

	ctx := context.Background()
	if withTasks {
		if _, _, err := c.BoardService.CreateRow(ctx, "Backend"); err != nil {
			t.Fatalf("create row: %v", err)
		}
		for _, title := range []string{"Write docs", "Fix login"} {
			if _, _, err := c.BoardService.CreateTask(ctx, 1, entity.ColumnToDo, title); err != nil {
				t.Fatalf("create task: %v", err)
			}
		}
	}

	board, err := c.GetBoardUseCase.Execute(ctx)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}
	return NewModel(board, c, nil), c
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func columnOf(t *testing.T, c *di.Container, taskID int) int {
	t.Helper()
	state, err := c.BoardService.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	i := state.FindTask(taskID)
	if i < 0 {
		t.Fatalf("task %d not found", taskID)
	}
	return state.Tasks[i].ColumnID
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t, true)

	m = press(t, m, "j")
	if m.focusedTask != 1 {
		t.Errorf("expected task 1, got %d", m.focusedTask)
	}
	m = press(t, m, "j")
	if m.focusedTask != 1 {
		t.Errorf("expected focus to stop at the last task, got %d", m.focusedTask)
	}

	m = press(t, m, "l")
	if m.focusedColumn != 1 || m.focusedTask != 0 {
		t.Errorf("expected column 1 task 0, got column %d task %d", m.focusedColumn, m.focusedTask)
	}
	m = press(t, m, "l")
	m = press(t, m, "l")
	if m.focusedColumn != 2 {
		t.Errorf("expected focus to stop at the last column, got %d", m.focusedColumn)
	}

	m = press(t, m, "h")
	if m.focusedColumn != 1 {
		t.Errorf("expected column 1, got %d", m.focusedColumn)
	}

	m = press(t, m, "tab")
	if m.focusedRow != 0 {
		t.Errorf("expected a single row to keep focus, got %d", m.focusedRow)
	}
}

func TestMoveTask(t *testing.T) {
	m, c := newTestModel(t, true)

	m = press(t, m, "m")
	if got := columnOf(t, c, 2); got != entity.ColumnInProgress {
		t.Fatalf("expected task 2 in progress, got column %d", got)
	}
	if m.focusedColumn != 1 || m.currentTask() == nil || m.currentTask().ID != 2 {
		t.Errorf("expected focus to follow the task, got column %d", m.focusedColumn)
	}

	m = press(t, m, "enter")
	if got := columnOf(t, c, 2); got != entity.ColumnDone {
		t.Errorf("expected task 2 done, got column %d", got)
	}

	m = press(t, m, "M")
	if got := columnOf(t, c, 2); got != entity.ColumnInProgress {
		t.Errorf("expected task 2 back in progress, got column %d", got)
	}
}

func TestAddAndDeleteTask(t *testing.T) {
	m, _ := newTestModel(t, true)

	m = press(t, m, "a")
	if got := m.currentCellTaskCount(); got != 3 {
		t.Fatalf("expected 3 tasks, got %d", got)
	}
	task := m.currentTask()
	if task == nil || task.Title != newTaskTitle || m.focusedTask != 2 {
		t.Fatalf("expected the new task to be focused, got %+v", task)
	}

	m = press(t, m, "d")
	if got := m.currentCellTaskCount(); got != 3 {
		t.Fatalf("expected first press to only ask, got %d tasks", got)
	}
	m = press(t, m, "d")
	if got := m.currentCellTaskCount(); got != 2 {
		t.Errorf("expected 2 tasks after delete, got %d", got)
	}
	if m.focusedTask != 1 {
		t.Errorf("expected focus clamped to 1, got %d", m.focusedTask)
	}
}

func TestDeleteCancelledByOtherKey(t *testing.T) {
	m, _ := newTestModel(t, true)

	m = press(t, m, "d")
	m = press(t, m, "k")
	m = press(t, m, "d")
	if got := m.currentCellTaskCount(); got != 2 {
		t.Errorf("expected nothing deleted, got %d tasks", got)
	}
}

func TestAddWithoutRows(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, "a")
	if !strings.Contains(m.status, "no rows") {
		t.Errorf("expected a hint about rows, got %q", m.status)
	}
}

func TestBoardLoadError(t *testing.T) {
	m, _ := newTestModel(t, true)

	updated, _ := m.Update(boardLoadedMsg{err: errors.New("disk gone")})
	m = updated.(Model)
	if !strings.Contains(m.status, "disk gone") {
		t.Errorf("expected the error in the status line, got %q", m.status)
	}
	if len(m.board.Rows) != 1 {
		t.Error("expected the previous board to be kept")
	}
}

func TestDaemonNotifications(t *testing.T) {
	m, _ := newTestModel(t, true)
	ch := make(chan *daemon.Notification)
	m.notifications = ch

	updated, cmd := m.Update(notificationMsg{
		notification: &daemon.Notification{
			Type:    daemon.NotificationBoardRepaired,
			Repairs: []dto.ReassignmentDTO{{Type: "task", OldID: 3, NewID: 4}},
		},
		ok: true,
	})
	m = updated.(Model)
	if !strings.Contains(m.status, "repaired 1") {
		t.Errorf("expected repair status, got %q", m.status)
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}

	updated, _ = m.Update(notificationMsg{ok: false})
	m = updated.(Model)
	if m.notifications != nil {
		t.Error("expected the closed subscription to be dropped")
	}
	if !strings.Contains(m.status, "disconnected") {
		t.Errorf("expected disconnect status, got %q", m.status)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, true)
	if got := m.View(); got != "Loading..." {
		t.Errorf("expected loading view before the first resize, got %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := updated.(Model).View()
	for _, want := range []string{"Backend #1", "To Do (2)", "Write docs", "Fix login", "Done (0)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}
