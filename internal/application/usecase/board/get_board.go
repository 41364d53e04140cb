package board

import (
	"context"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/service"
)

// GetBoardUseCase loads the board laid out for display
type GetBoardUseCase struct {
	boardService *service.BoardService
}

// NewGetBoardUseCase creates a new GetBoardUseCase
func NewGetBoardUseCase(boardService *service.BoardService) *GetBoardUseCase {
	return &GetBoardUseCase{boardService: boardService}
}

// Execute loads the board and resolves every card title
func (uc *GetBoardUseCase) Execute(ctx context.Context) (*dto.BoardDTO, error) {
	c, err := uc.boardService.Load(ctx)
	if err != nil {
		return nil, err
	}

	titles, err := uc.boardService.Titles(ctx, dto.CardIDs(c))
	if err != nil {
		return nil, err
	}

	return dto.BoardToDTO(c, titles), nil
}
