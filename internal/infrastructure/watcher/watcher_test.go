package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus/hooks/test"
)

func startWatcher(t *testing.T) (*BoardWatcher, string) {
	t.Helper()

	dir := t.TempDir()
	logger, _ := test.NewNullLogger()
	bw, err := New(dir, 50*time.Millisecond, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bw.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { bw.Stop() })
	return bw, dir
}

func waitChange(t *testing.T, bw *BoardWatcher) Change {
	t.Helper()
	select {
	case c := <-bw.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func contains(paths []string, p string) bool {
	for _, x := range paths {
		if x == p {
			return true
		}
	}
	return false
}

func TestWatcherCoalescesNestedChanges(t *testing.T) {
	bw, dir := startWatcher(t)

	rowDir := filepath.Join(dir, "board", "Row (1, abc, 0)")
	if err := os.Mkdir(rowDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// wait for the new row directory to be watched
	first := waitChange(t, bw)
	if !contains(first.Paths, rowDir) {
		t.Errorf("expected %s in %v", rowDir, first.Paths)
	}

	colDir := filepath.Join(rowDir, "To Do")
	if err := os.Mkdir(colDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	change := waitChange(t, bw)
	if !contains(change.Paths, colDir) {
		t.Errorf("expected %s in %v", colDir, change.Paths)
	}
}

func TestWatcherReportsArchive(t *testing.T) {
	bw, dir := startWatcher(t)

	archive := filepath.Join(dir, "archive.jsonl")
	if err := os.WriteFile(archive, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	change := waitChange(t, bw)
	if !contains(change.Paths, archive) {
		t.Errorf("expected archive in %v", change.Paths)
	}
}

func TestRelevant(t *testing.T) {
	bw := &BoardWatcher{dataDir: "/data"}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"task file", fsnotify.Event{Name: "/data/board/r (1, a, 0)/To Do/t (2, b, 0).md", Op: fsnotify.Create}, true},
		{"board dir", fsnotify.Event{Name: "/data/board", Op: fsnotify.Remove}, true},
		{"archive", fsnotify.Event{Name: "/data/archive.jsonl", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: "/data/archive.jsonl", Op: fsnotify.Chmod}, false},
		{"lock file", fsnotify.Event{Name: "/data/.board.lock", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "/data/board/.tmp-123", Op: fsnotify.Create}, false},
		{"card store", fsnotify.Event{Name: "/data/tasks/2/content.md", Op: fsnotify.Write}, false},
		{"lookalike", fsnotify.Event{Name: "/data/boards/x", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bw.relevant(tt.event); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestStartTwice(t *testing.T) {
	bw, _ := startWatcher(t)
	if err := bw.Start(); err == nil {
		t.Error("expected error on second start")
	}
	if err := bw.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bw.IsRunning() {
		t.Error("watcher should be stopped")
	}
	if err := bw.Stop(); err != nil {
		t.Errorf("second stop should be a no-op: %v", err)
	}
}
