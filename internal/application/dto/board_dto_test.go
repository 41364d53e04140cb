package dto

import (
	"reflect"
	"testing"

	"fskanban/internal/domain/entity"
)

func TestBoardToDTO(t *testing.T) {
	c := &entity.Container{
		Columns: entity.DefaultColumns(),
		Rows:    []entity.Row{{ID: 1, SyncID: "r1"}, {ID: 4, Position: 1, SyncID: "r4"}},
		Tasks: []entity.Task{
			{ID: 2, RowID: 1, ColumnID: entity.ColumnDone, SyncID: "t2"},
			{ID: 3, RowID: 1, ColumnID: entity.ColumnDone, Position: 1, SyncID: "t3"},
			{ID: 5, RowID: 4, ColumnID: entity.ColumnToDo, SyncID: "t5"},
		},
	}
	titles := map[int]string{1: "Backend", 2: "a", 3: "b", 4: "Frontend"}

	board := BoardToDTO(c, titles)

	if len(board.Columns) != 3 || len(board.Rows) != 2 {
		t.Fatalf("unexpected layout %+v", board)
	}
	backend := board.Rows[0]
	if backend.Title != "Backend" || backend.TaskCount() != 2 {
		t.Errorf("unexpected row %+v", backend)
	}
	done := backend.Cells[2]
	if done.ColumnName != "Done" || len(done.Tasks) != 2 || done.Tasks[1].Title != "b" || done.Tasks[1].RowTitle != "Backend" {
		t.Errorf("unexpected done cell %+v", done)
	}
	if len(backend.Cells[0].Tasks) != 0 || backend.Cells[0].Tasks == nil {
		t.Error("empty cells should hold an empty list")
	}
	if got := board.Rows[1].Cells[0].Tasks[0]; got.ID != 5 || got.Title != "" {
		t.Errorf("task without a title should keep an empty title, got %+v", got)
	}

	if ids := CardIDs(c); !reflect.DeepEqual(ids, []int{1, 4, 2, 3, 5}) {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestReassignmentsToDTO(t *testing.T) {
	got := ReassignmentsToDTO([]entity.Reassignment{{Type: entity.CardTypeTask, OldID: 3, NewID: 4, SyncID: "d"}})
	want := []ReassignmentDTO{{Type: "task", OldID: 3, NewID: 4, SyncID: "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got := ReassignmentsToDTO(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %#v", got)
	}
}
