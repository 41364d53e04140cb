package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
	"fskanban/internal/infrastructure/persistence/mapper"
	"fskanban/internal/infrastructure/storage"
)

// ArchiveRepositoryImpl keeps archived rows in an append-only JSON lines log
type ArchiveRepositoryImpl struct {
	storage     *storage.Handler
	pathBuilder *PathBuilder
	logger      *logrus.Logger
	mu          sync.Mutex
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(handler *storage.Handler, logger *logrus.Logger) *ArchiveRepositoryImpl {
	return &ArchiveRepositoryImpl{
		storage:     handler,
		pathBuilder: NewPathBuilder(),
		logger:      logger,
	}
}

var _ repository.ArchiveRepository = (*ArchiveRepositoryImpl)(nil)

// GetArchive reads the log newest line first. Lines that fail to parse are
// skipped with a warning.
func (r *ArchiveRepositoryImpl) GetArchive(ctx context.Context) (*entity.ArchiveStored, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.readLines(ctx)
	if err != nil {
		return nil, err
	}

	archive := &entity.ArchiveStored{Rows: []entity.ArchivedRow{}}
	for i := len(lines) - 1; i >= 0; i-- {
		row, err := mapper.ArchivedRowFromStorage(lines[i])
		if err != nil {
			r.warnSkipped(i, err)
			continue
		}
		archive.Rows = append(archive.Rows, row)
	}
	return archive, nil
}

// AddToArchive appends a row to the log
func (r *ArchiveRepositoryImpl) AddToArchive(ctx context.Context, row entity.ArchivedRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, err := mapper.ArchivedRowToStorage(row)
	if err != nil {
		return fmt.Errorf("failed to encode archived row %d: %w", row.ID, err)
	}
	return r.storage.AppendLine(ctx, "", r.pathBuilder.ArchiveFile(), line)
}

// RemoveFromArchive rewrites the log without any line for rowID.
// Unparseable lines are dropped with a warning.
func (r *ArchiveRepositoryImpl) RemoveFromArchive(ctx context.Context, rowID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.readLines(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	removed := 0
	for i, line := range lines {
		row, err := mapper.ArchivedRowFromStorage(line)
		if err != nil {
			r.warnSkipped(i, err)
			continue
		}
		if row.ID == rowID {
			removed++
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if removed == 0 {
		r.logger.WithField("row", rowID).Debug("row not present in archive")
	}
	return r.storage.WriteText(ctx, "", r.pathBuilder.ArchiveFile(), buf.String())
}

func (r *ArchiveRepositoryImpl) readLines(ctx context.Context) ([][]byte, error) {
	data, err := r.storage.ReadFile(ctx, "", r.pathBuilder.ArchiveFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var lines [][]byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *ArchiveRepositoryImpl) warnSkipped(index int, err error) {
	r.logger.WithError(err).WithFields(logrus.Fields{
		"line": index + 1,
		"kind": entity.KindArchiveParse.String(),
	}).Warn("skipping unparseable archive line")
}
