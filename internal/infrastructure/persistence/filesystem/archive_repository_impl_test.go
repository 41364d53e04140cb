package filesystem

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"fskanban/internal/domain/entity"
)

func archiveIDs(a *entity.ArchiveStored) []int {
	ids := []int{}
	for _, r := range a.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestGetArchiveMissingFile(t *testing.T) {
	f := newFixture(t, nil)

	a, err := f.archive.GetArchive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Rows) != 0 {
		t.Errorf("expected empty archive, got %+v", a.Rows)
	}
}

func TestGetArchiveNewestFirst(t *testing.T) {
	f := newFixture(t, map[string]string{
		"archive.jsonl": strings.Join([]string{
			`{"id":1,"columns":[{"id":1,"tasks":[4,5]}]}`,
			`not json`,
			``,
			`{"id":2,"columns":[]}`,
		}, "\n") + "\n",
	})

	a, err := f.archive.GetArchive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := archiveIDs(a); !reflect.DeepEqual(got, []int{2, 1}) {
		t.Errorf("expected [2 1], got %v", got)
	}
	row, ok := a.Find(1)
	if !ok || !reflect.DeepEqual(row.TaskIDs(), []int{4, 5}) {
		t.Errorf("expected row 1 with tasks [4 5], got %+v", row)
	}

	entries := f.hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].Level != logrus.WarnLevel {
		t.Errorf("expected warn level, got %v", entries[0].Level)
	}
	if entries[0].Data["line"] != 2 {
		t.Errorf("expected line 2, got %v", entries[0].Data["line"])
	}
}

func TestAddToArchive(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	rows := []entity.ArchivedRow{
		{ID: 1, Columns: []entity.ArchivedColumn{{ID: entity.ColumnToDo, Tasks: []int{2}}}},
		{ID: 3},
	}
	for _, r := range rows {
		if err := f.archive.AddToArchive(ctx, r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := `{"id":1,"columns":[{"id":1,"tasks":[2]}]}` + "\n" + `{"id":3,"columns":[]}` + "\n"
	if got := f.read(t, "archive.jsonl"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	a, err := f.archive.GetArchive(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := archiveIDs(a); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("expected [3 1], got %v", got)
	}
}

func TestRemoveFromArchive(t *testing.T) {
	f := newFixture(t, map[string]string{
		"archive.jsonl": `{"id":1,"columns":[]}` + "\n" +
			`{broken` + "\n" +
			`{"id":2,"columns":[]}` + "\n" +
			`{"id":1,"columns":[]}` + "\n",
	})
	ctx := context.Background()

	if err := f.archive.RemoveFromArchive(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.read(t, "archive.jsonl"); got != `{"id":2,"columns":[]}`+"\n" {
		t.Errorf("unexpected archive contents %q", got)
	}
	if len(f.hook.AllEntries()) != 1 {
		t.Errorf("expected the broken line to be reported once, got %d entries", len(f.hook.AllEntries()))
	}

	if err := f.archive.RemoveFromArchive(ctx, 42); err != nil {
		t.Fatalf("removing an absent row should succeed: %v", err)
	}
}
