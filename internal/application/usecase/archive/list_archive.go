package archive

import (
	"context"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/repository"
	"fskanban/internal/domain/service"
)

// ListArchiveUseCase lists archived rows with their card titles
type ListArchiveUseCase struct {
	archiveRepo  repository.ArchiveRepository
	boardService *service.BoardService
}

// NewListArchiveUseCase creates a new ListArchiveUseCase
func NewListArchiveUseCase(archiveRepo repository.ArchiveRepository, boardService *service.BoardService) *ListArchiveUseCase {
	return &ListArchiveUseCase{archiveRepo: archiveRepo, boardService: boardService}
}

// Execute returns archived rows, most recently archived first
func (uc *ListArchiveUseCase) Execute(ctx context.Context) ([]dto.ArchivedRowDTO, error) {
	archive, err := uc.archiveRepo.GetArchive(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0)
	for _, r := range archive.Rows {
		ids = append(ids, r.ID)
		ids = append(ids, r.TaskIDs()...)
	}
	titles, err := uc.boardService.Titles(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ArchivedRowDTO, 0, len(archive.Rows))
	for _, r := range archive.Rows {
		result = append(result, dto.ArchivedRowToDTO(r, titles))
	}
	return result, nil
}
