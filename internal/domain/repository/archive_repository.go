package repository

import (
	"context"

	"fskanban/internal/domain/entity"
)

// ArchiveRepository stores archived rows
type ArchiveRepository interface {
	// GetArchive returns archived rows, most recently archived first
	GetArchive(ctx context.Context) (*entity.ArchiveStored, error)
	AddToArchive(ctx context.Context, row entity.ArchivedRow) error
	RemoveFromArchive(ctx context.Context, rowID int) error
}
