package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"fskanban/internal/domain/entity"
)

func newTestHandler(t *testing.T, files map[string]string, dirs ...string) *Handler {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	for p, content := range files {
		if err := fs.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := afero.WriteFile(fs, p, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return NewHandler(fs)
}

func TestLoadTree(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, map[string]string{
		"board/row1 (1, abc, 1)/To Do/task2 (2, def, 1).md": "x",
		"board/row1 (1, abc, 1)/Done/.tmp-123":              "partial",
	}, "board/row1 (1, abc, 1)/In Progress")

	tree, err := h.LoadTree(ctx, "board")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Name != "board" {
		t.Errorf("expected root name board, got %q", tree.Name)
	}
	row, ok := tree.Dir("row1 (1, abc, 1)")
	if !ok {
		t.Fatalf("row directory missing from tree: %+v", tree)
	}
	if got, want := row.DirNames(), []string{"Done", "In Progress", "To Do"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	done, _ := row.Dir("Done")
	if len(done.Files) != 0 {
		t.Errorf("temp files should be skipped, got %v", done.Files)
	}
	todo, _ := row.Dir("To Do")
	if !reflect.DeepEqual(todo.Files, []string{"task2 (2, def, 1).md"}) {
		t.Errorf("unexpected files %v", todo.Files)
	}
}

func TestLoadTreeMissingDir(t *testing.T) {
	h := newTestHandler(t, nil)
	tree, err := h.LoadTree(context.Background(), "board")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Dirs) != 0 || len(tree.Files) != 0 {
		t.Errorf("expected empty tree, got %+v", tree)
	}
}

func TestTreeWalkOrder(t *testing.T) {
	tree := Tree{
		Name:  "board",
		Files: []string{"readme.md"},
		Dirs: []Tree{
			{Name: "a", Files: []string{"x.md"}, Dirs: []Tree{{Name: "inner"}}},
		},
	}

	var got []string
	tree.Walk(func(rel string, isDir bool) {
		if isDir {
			rel += "/"
		}
		got = append(got, rel)
	})

	want := []string{"readme.md", "a/", "a/x.md", "a/inner/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestListAndReadWrite(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, map[string]string{"tasks/1/metadata.md": "{}"}, "tasks/2", "tasks/10")

	dirs, err := h.ListDirectories(ctx, "tasks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(dirs, []string{"1", "10", "2"}) {
		t.Errorf("unexpected dirs %v", dirs)
	}

	files, err := h.ListFiles(ctx, "tasks/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"metadata.md"}) {
		t.Errorf("unexpected files %v", files)
	}

	if err := h.WriteJSON(ctx, "tasks/2", "metadata.md", map[string]int{"id": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := h.ReadFile(ctx, "tasks/2", "metadata.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{\n  \"id\": 2\n}" {
		t.Errorf("unexpected content %q", string(data))
	}

	if _, err := h.ReadFile(ctx, "tasks/3", "metadata.md"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRenameDirectory(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, map[string]string{"tasks/3/metadata.md": "{}"})

	segments := []string{"tasks", "3"}
	if err := h.RenameDirectory(ctx, segments, "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if segments[1] != "3" {
		t.Errorf("caller segments were modified: %v", segments)
	}

	if ok, _ := h.Exists(ctx, filepath.Join("tasks", "4", "metadata.md")); !ok {
		t.Error("expected renamed directory to contain metadata")
	}
	if ok, _ := h.Exists(ctx, filepath.Join("tasks", "3")); ok {
		t.Error("expected old directory to be gone")
	}
}

func TestRemoveAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, map[string]string{"a/b/c.md": "x", "a/d.md": "y"})

	if err := h.DeleteFile(ctx, "a", "d.md"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.DeleteFile(ctx, "a", "d.md"); err != nil {
		t.Fatalf("deleting a missing file should succeed, got %v", err)
	}
	if err := h.RemoveDirectory(ctx, "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, _ := h.LoadTree(ctx, "a")
	if len(tree.Dirs) != 0 || len(tree.Files) != 0 {
		t.Errorf("expected empty tree, got %+v", tree)
	}
}

func TestPermissionLost(t *testing.T) {
	h := NewHandler(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := h.WriteText(context.Background(), "tasks/1", "content.md", "x")
	if err == nil {
		t.Fatal("expected error writing to read-only fs")
	}
	if kind := entity.KindOf(err); kind != entity.KindPermissionLost {
		t.Errorf("expected PermissionLost, got %v (%v)", kind, err)
	}
	if !errors.Is(err, entity.ErrPermissionLost) {
		t.Errorf("expected errors.Is to match ErrPermissionLost")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHandler(t, nil)
	if _, err := h.LoadTree(ctx, "board"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
