package board

import (
	"context"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
)

// PlanBoardUseCase reports how far the board tree is from its normalized form
type PlanBoardUseCase struct {
	boardRepo repository.BoardRepository
}

// NewPlanBoardUseCase creates a new PlanBoardUseCase
func NewPlanBoardUseCase(boardRepo repository.BoardRepository) *PlanBoardUseCase {
	return &PlanBoardUseCase{boardRepo: boardRepo}
}

// Execute loads the board and plans saving it back unchanged. Entries show
// up when positions are not contiguous, column directories are missing or
// stray files sit in the tree.
func (uc *PlanBoardUseCase) Execute(ctx context.Context) (*dto.PlanDTO, error) {
	c, err := uc.boardRepo.GetKanbanState(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = entity.NewContainer()
	}

	creates, removes, err := uc.boardRepo.PlanKanbanState(ctx, c)
	if err != nil {
		return nil, err
	}
	return &dto.PlanDTO{Creates: nonNil(creates), Removes: nonNil(removes)}, nil
}

// ApplyBoardUseCase rewrites the board tree into its normalized form
type ApplyBoardUseCase struct {
	boardRepo repository.BoardRepository
}

// NewApplyBoardUseCase creates a new ApplyBoardUseCase
func NewApplyBoardUseCase(boardRepo repository.BoardRepository) *ApplyBoardUseCase {
	return &ApplyBoardUseCase{boardRepo: boardRepo}
}

// Execute plans, then saves, and returns what was changed
func (uc *ApplyBoardUseCase) Execute(ctx context.Context) (*dto.PlanDTO, error) {
	c, err := uc.boardRepo.GetKanbanState(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = entity.NewContainer()
	}

	creates, removes, err := uc.boardRepo.PlanKanbanState(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := uc.boardRepo.SaveKanbanState(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PlanDTO{Creates: nonNil(creates), Removes: nonNil(removes)}, nil
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
