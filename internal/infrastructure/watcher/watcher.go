// Package watcher reports external edits to the board directory tree.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const (
	boardDirName = "board"
	archiveFile  = "archive.jsonl"
)

// Change is a debounced batch of paths that changed on disk
type Change struct {
	Paths []string
}

// BoardWatcher watches board/ recursively and archive.jsonl in a data
// directory. Bursts of events are coalesced into one Change after the
// debounce window has been quiet.
type BoardWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *logrus.Logger
	dataDir  string
	debounce time.Duration

	changes chan Change
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New creates a watcher. It must be started with Start before it emits changes.
func New(dataDir string, debounce time.Duration, logger *logrus.Logger) (*BoardWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &BoardWatcher{
		watcher:  w,
		logger:   logger,
		dataDir:  dataDir,
		debounce: debounce,
		changes:  make(chan Change, 16),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. board/ is created when missing.
func (bw *BoardWatcher) Start() error {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.running {
		return fmt.Errorf("watcher already running")
	}

	boardDir := filepath.Join(bw.dataDir, boardDirName)
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}
	if err := bw.watcher.Add(bw.dataDir); err != nil {
		return fmt.Errorf("failed to watch data directory %s: %w", bw.dataDir, err)
	}
	if err := bw.addTree(boardDir); err != nil {
		return err
	}

	bw.running = true
	bw.wg.Add(1)
	go bw.processEvents()

	return nil
}

// Stop stops watching and closes the Changes and Errors channels.
// It blocks until the event loop has exited.
func (bw *BoardWatcher) Stop() error {
	bw.mu.Lock()
	if !bw.running {
		bw.mu.Unlock()
		return nil
	}
	bw.running = false
	bw.mu.Unlock()

	close(bw.done)

	if err := bw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	bw.wg.Wait()

	close(bw.changes)
	close(bw.errors)

	return nil
}

// Changes returns the channel of debounced changes
func (bw *BoardWatcher) Changes() <-chan Change {
	return bw.changes
}

// Errors returns the channel of watcher errors
func (bw *BoardWatcher) Errors() <-chan error {
	return bw.errors
}

// IsRunning reports whether the watcher has been started and not stopped
func (bw *BoardWatcher) IsRunning() bool {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	return bw.running
}

func (bw *BoardWatcher) processEvents() {
	defer bw.wg.Done()

	timer := time.NewTimer(bw.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-bw.done:
			return

		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}
			if !bw.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := bw.addTree(event.Name); err != nil {
						bw.logger.WithError(err).Warn("failed to watch new directory")
					}
				}
			}

			pending[event.Name] = struct{}{}
			timer.Reset(bw.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			change := Change{Paths: make([]string, 0, len(pending))}
			for p := range pending {
				change.Paths = append(change.Paths, p)
			}
			sort.Strings(change.Paths)
			pending = make(map[string]struct{})

			select {
			case bw.changes <- change:
			case <-bw.done:
				return
			}

		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case bw.errors <- err:
			case <-bw.done:
				return
			}
		}
	}
}

// relevant keeps events under board/ and on archive.jsonl, ignoring chmod,
// temp files and the lock file
func (bw *BoardWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	rel, err := filepath.Rel(bw.dataDir, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel == archiveFile || rel == boardDirName || strings.HasPrefix(rel, boardDirName+"/")
}

// addTree watches dir and every directory below it
func (bw *BoardWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// vanished between the event and the walk
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := bw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
