package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"fskanban/internal/domain/entity"
	"fskanban/internal/infrastructure/storage"
)

type fixture struct {
	fs      afero.Fs
	renames *renameLog
	handler *storage.Handler
	cards   *CardRepositoryImpl
	archive *ArchiveRepositoryImpl
	board   *BoardRepositoryImpl
	hook    *test.Hook
	now     time.Time
}

func newFixture(t *testing.T, files map[string]string, dirs ...string) *fixture {
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

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	renames := &renameLog{Fs: fs}
	f := &fixture{
		fs:      fs,
		renames: renames,
		handler: storage.NewHandler(renames),
		hook:    hook,
		now:     time.Unix(1_700_000_000, 0),
	}
	f.cards = NewCardRepository(f.handler)
	f.archive = NewArchiveRepository(f.handler, logger)
	f.board = NewBoardRepository(f.handler, f.cards, f.archive, NewBoardLock("", 0), logger,
		WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) saveMeta(t *testing.T, id int, title string, cardType entity.CardType, syncID string) {
	t.Helper()
	meta := &entity.CardMetadata{ID: id, Title: title, Type: cardType, SyncID: syncID}
	if err := f.cards.SaveCardMetadata(context.Background(), meta); err != nil {
		t.Fatalf("save metadata %d: %v", id, err)
	}
}

func (f *fixture) exists(t *testing.T, p string) bool {
	t.Helper()
	ok, err := afero.Exists(f.fs, p)
	if err != nil {
		t.Fatalf("stat %s: %v", p, err)
	}
	return ok
}

func (f *fixture) read(t *testing.T, p string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(data)
}

func metaJSON(id int, title, cardType, syncID string) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"type":%q,"syncId":%q}`, id, title, cardType, syncID)
}

// renameLog records the renames made through it, leaving out the temp file
// swaps of atomic writes
type renameLog struct {
	afero.Fs
	moves []string
}

func (l *renameLog) Rename(oldname, newname string) error {
	if !strings.HasPrefix(filepath.Base(oldname), ".tmp-") {
		l.moves = append(l.moves, oldname+" -> "+newname)
	}
	return l.Fs.Rename(oldname, newname)
}
