package archive_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"fskanban/internal/application/dto"
	"fskanban/internal/application/usecase/archive"
	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/service"
	"fskanban/internal/infrastructure/persistence/filesystem"
	"fskanban/internal/infrastructure/storage"
)

func TestListArchive(t *testing.T) {
	ctx := context.Background()
	handler := storage.NewHandler(afero.NewMemMapFs())
	logger, _ := test.NewNullLogger()

	cards := filesystem.NewCardRepository(handler)
	archiveRepo := filesystem.NewArchiveRepository(handler, logger)
	repo := filesystem.NewBoardRepository(handler, cards, archiveRepo, filesystem.NewBoardLock("", 0), logger)
	svc := service.NewBoardService(repo, cards, archiveRepo)
	uc := archive.NewListArchiveUseCase(archiveRepo, svc)

	got, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty archive, got %+v", got)
	}

	for _, title := range []string{"Backend", "Frontend"} {
		_, row, err := svc.CreateRow(ctx, title)
		if err != nil {
			t.Fatalf("create row: %v", err)
		}
		if _, _, err := svc.CreateTask(ctx, row.ID, entity.ColumnDone, title+" task"); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	// Backend is 1 with task 2, Frontend is 3 with task 4
	for _, id := range []int{1, 3} {
		if _, _, err := svc.ArchiveRow(ctx, id); err != nil {
			t.Fatalf("archive row %d: %v", id, err)
		}
	}

	got, err = uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []dto.ArchivedRowDTO{
		{ID: 3, Title: "Frontend", Columns: []dto.ArchivedColumnDTO{
			{ID: 1, Title: "To Do", Tasks: []dto.ArchivedTaskDTO{}},
			{ID: 2, Title: "In Progress", Tasks: []dto.ArchivedTaskDTO{}},
			{ID: 3, Title: "Done", Tasks: []dto.ArchivedTaskDTO{{ID: 4, Title: "Frontend task"}}},
		}},
		{ID: 1, Title: "Backend", Columns: []dto.ArchivedColumnDTO{
			{ID: 1, Title: "To Do", Tasks: []dto.ArchivedTaskDTO{}},
			{ID: 2, Title: "In Progress", Tasks: []dto.ArchivedTaskDTO{}},
			{ID: 3, Title: "Done", Tasks: []dto.ArchivedTaskDTO{{ID: 2, Title: "Backend task"}}},
		}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
