package board

import (
	"context"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/repository"
)

// CheckBoardUseCase reloads the board from disk and reports id repairs
type CheckBoardUseCase struct {
	boardRepo repository.BoardRepository
}

// NewCheckBoardUseCase creates a new CheckBoardUseCase
func NewCheckBoardUseCase(boardRepo repository.BoardRepository) *CheckBoardUseCase {
	return &CheckBoardUseCase{boardRepo: boardRepo}
}

// Execute runs the check. An empty result means every id was unique.
func (uc *CheckBoardUseCase) Execute(ctx context.Context) ([]dto.ReassignmentDTO, error) {
	_, report, err := uc.boardRepo.CheckKanbanState(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ReassignmentsToDTO(report), nil
}
