package task_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"fskanban/internal/application/dto"
	"fskanban/internal/application/usecase/task"
	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/service"
	"fskanban/internal/infrastructure/config"
	"fskanban/internal/infrastructure/persistence/filesystem"
	"fskanban/internal/infrastructure/storage"
)

const dataPath = "/data"

type env struct {
	cards  *filesystem.CardRepositoryImpl
	svc    *service.BoardService
	list   *task.ListTasksUseCase
	get    *task.GetTaskUseCase
	search *task.SearchTasksUseCase

	backend, frontend int
}

// newEnv builds a board with two rows:
//
//	Backend:  To Do [Write docs, Fix login], Done [Deploy api]
//	Frontend: In Progress [Polish header]
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	handler := storage.NewHandler(afero.NewMemMapFs())
	logger, _ := test.NewNullLogger()
	cfg := config.Default("/home/x")
	cfg.Storage.DataPath = dataPath

	e := &env{cards: filesystem.NewCardRepository(handler)}
	archive := filesystem.NewArchiveRepository(handler, logger)
	repo := filesystem.NewBoardRepository(handler, e.cards, archive, filesystem.NewBoardLock("", 0), logger)
	e.svc = service.NewBoardService(repo, e.cards, archive)
	e.list = task.NewListTasksUseCase(e.svc, e.cards, cfg)
	e.get = task.NewGetTaskUseCase(e.list, e.cards)
	e.search = task.NewSearchTasksUseCase(e.list)

	for _, title := range []string{"Backend", "Frontend"} {
		_, row, err := e.svc.CreateRow(ctx, title)
		if err != nil {
			t.Fatalf("create row: %v", err)
		}
		if title == "Backend" {
			e.backend = row.ID
		} else {
			e.frontend = row.ID
		}
	}

	for _, c := range []struct {
		row, column int
		title       string
	}{
		{e.backend, entity.ColumnToDo, "Write docs"},
		{e.backend, entity.ColumnToDo, "Fix login"},
		{e.backend, entity.ColumnDone, "Deploy api"},
		{e.frontend, entity.ColumnInProgress, "Polish header"},
	} {
		if _, _, err := e.svc.CreateTask(ctx, c.row, c.column, c.title); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	return e
}

func titles(tasks []dto.TaskDTO) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestListTasks(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		filter dto.TaskFilter
		want   []string
	}{
		{"all", dto.TaskFilter{}, []string{"Write docs", "Fix login", "Deploy api", "Polish header"}},
		{"by row", dto.TaskFilter{RowID: e.frontend}, []string{"Polish header"}},
		{"by column", dto.TaskFilter{ColumnName: "To Do"}, []string{"Write docs", "Fix login"}},
		{"by row and column", dto.TaskFilter{RowID: e.frontend, ColumnName: "Done"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.list.Execute(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(titles(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, titles(got))
			}
		})
	}
}

func TestListTasksFields(t *testing.T) {
	e := newEnv(t)

	got, err := e.list.Execute(context.Background(), dto.TaskFilter{ColumnName: "Done"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one task, got %+v", got)
	}

	task := got[0]
	if task.RowID != e.backend || task.RowTitle != "Backend" || task.ColumnName != "Done" || task.Position != 0 {
		t.Errorf("unexpected task %+v", task)
	}
	wantPath := filepath.Join(dataPath, "tasks", "5", "content.md")
	if task.ID != 5 || task.FilePath != wantPath {
		t.Errorf("expected id 5 at %s, got %d at %s", wantPath, task.ID, task.FilePath)
	}
	if task.SyncID == "" {
		t.Error("expected a sync id")
	}
}

func TestListTasksPreview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if err := e.cards.SaveCardContent(ctx, 3, "# Docs\n\nCover the install steps.", nil); err != nil {
		t.Fatalf("save content: %v", err)
	}

	got, err := e.list.Execute(ctx, dto.TaskFilter{RowID: e.backend, ColumnName: "To Do", WithPreview: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Heading != "Docs" || got[0].Preview != "Cover the install steps." {
		t.Errorf("unexpected summary %q / %q", got[0].Heading, got[0].Preview)
	}
	if got[1].Heading != "" || got[1].Preview != "" {
		t.Errorf("expected empty summary for an empty card, got %+v", got[1])
	}
}

func TestListTasksBadFilter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.list.Execute(ctx, dto.TaskFilter{ColumnName: "Blocked"}); !errors.Is(err, entity.ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
	if _, err := e.list.Execute(ctx, dto.TaskFilter{RowID: 99}); !errors.Is(err, entity.ErrRowNotFound) {
		t.Errorf("expected ErrRowNotFound, got %v", err)
	}
}

func TestGetTask(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	body := "# Login\n\nSessions expire too early."
	if err := e.cards.SaveCardContent(ctx, 4, body, map[string]any{"priority": "high"}); err != nil {
		t.Fatalf("save content: %v", err)
	}

	got, err := e.get.Execute(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Fix login" || got.Heading != "Login" || got.Preview != "Sessions expire too early." {
		t.Errorf("unexpected task %+v", got.TaskDTO)
	}
	if got.Content != body {
		t.Errorf("expected content %q, got %q", body, got.Content)
	}
	if got.Frontmatter["priority"] != "high" {
		t.Errorf("expected frontmatter to carry priority, got %+v", got.Frontmatter)
	}

	if _, err := e.get.Execute(ctx, e.backend); !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("rows are not tasks, expected ErrTaskNotFound, got %v", err)
	}
}

func TestSearchTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	got, err := e.search.Execute(ctx, "login", dto.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Fix login" {
		t.Fatalf("expected Fix login, got %+v", got)
	}
	if !reflect.DeepEqual(got[0].MatchedIndexes, []int{4, 5, 6, 7, 8}) {
		t.Errorf("unexpected matched indexes %v", got[0].MatchedIndexes)
	}

	got, err = e.search.Execute(ctx, "zzz", dto.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no match, got %+v", got)
	}

	got, err = e.search.Execute(ctx, "", dto.TaskFilter{RowID: e.backend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected every backend task, got %+v", got)
	}
}
