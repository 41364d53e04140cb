package task

import (
	"context"
	"path/filepath"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/service"
	"fskanban/internal/infrastructure/config"
	"fskanban/internal/infrastructure/persistence/filesystem"
	"fskanban/internal/infrastructure/serialization"
)

// CardSummarizer reads the heading and preview of a card body
type CardSummarizer interface {
	Summary(ctx context.Context, id int) (serialization.Summary, error)
}

// ListTasksUseCase handles listing the tasks of the board
type ListTasksUseCase struct {
	boardService *service.BoardService
	summaries    CardSummarizer
	config       *config.Config
	pathBuilder  *filesystem.PathBuilder
}

// NewListTasksUseCase creates a new ListTasksUseCase
func NewListTasksUseCase(boardService *service.BoardService, summaries CardSummarizer, cfg *config.Config) *ListTasksUseCase {
	return &ListTasksUseCase{
		boardService: boardService,
		summaries:    summaries,
		config:       cfg,
		pathBuilder:  filesystem.NewPathBuilder(),
	}
}

// Execute lists tasks row by row, then column by column, with the path of
// each task's content file
func (uc *ListTasksUseCase) Execute(ctx context.Context, filter dto.TaskFilter) ([]dto.TaskDTO, error) {
	c, err := uc.boardService.Load(ctx)
	if err != nil {
		return nil, err
	}

	var columnID int
	if filter.ColumnName != "" {
		col, ok := entity.ColumnByTitle(filter.ColumnName)
		if !ok {
			return nil, entity.ErrColumnNotFound
		}
		columnID = col.ID
	}
	if filter.RowID != 0 && c.FindRow(filter.RowID) < 0 {
		return nil, entity.ErrRowNotFound
	}

	titles, err := uc.boardService.Titles(ctx, dto.CardIDs(c))
	if err != nil {
		return nil, err
	}

	result := make([]dto.TaskDTO, 0)
	for _, row := range c.Rows {
		if filter.RowID != 0 && row.ID != filter.RowID {
			continue
		}
		for _, col := range c.Columns {
			if columnID != 0 && col.ID != columnID {
				continue
			}
			for _, t := range c.TasksIn(row.ID, col.ID) {
				taskDTO := dto.TaskToDTO(t, titles[t.ID], titles[row.ID], col.Title)
				taskDTO.FilePath = uc.contentPath(t.ID)
				if filter.WithPreview {
					summary, err := uc.summaries.Summary(ctx, t.ID)
					if err != nil {
						return nil, err
					}
					taskDTO.Heading = summary.Heading
					taskDTO.Preview = summary.Preview
				}
				result = append(result, taskDTO)
			}
		}
	}

	return result, nil
}

// contentPath returns the absolute path of tasks/<id>/content.md
func (uc *ListTasksUseCase) contentPath(id int) string {
	return filepath.Join(uc.config.Storage.DataPath, filepath.FromSlash(uc.pathBuilder.CardContent(id)))
}
