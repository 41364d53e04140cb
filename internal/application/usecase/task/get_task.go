package task

import (
	"context"
	"fmt"

	"fskanban/internal/application/dto"
	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
	"fskanban/internal/infrastructure/serialization"
)

// GetTaskUseCase loads a single task with its card content
type GetTaskUseCase struct {
	list     *ListTasksUseCase
	cardRepo repository.CardRepository
}

// NewGetTaskUseCase creates a new GetTaskUseCase
func NewGetTaskUseCase(list *ListTasksUseCase, cardRepo repository.CardRepository) *GetTaskUseCase {
	return &GetTaskUseCase{list: list, cardRepo: cardRepo}
}

// Execute returns the task with the given id
func (uc *GetTaskUseCase) Execute(ctx context.Context, id int) (*dto.TaskDetailDTO, error) {
	tasks, err := uc.list.Execute(ctx, dto.TaskFilter{})
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		if t.ID != id {
			continue
		}

		content, err := uc.cardRepo.GetCardContent(ctx, id)
		if err != nil {
			return nil, err
		}
		summary := serialization.Summarize(content.Content)
		t.Heading = summary.Heading
		t.Preview = summary.Preview

		return &dto.TaskDetailDTO{
			TaskDTO:     t,
			Content:     content.Content,
			Frontmatter: content.Metadata,
		}, nil
	}

	return nil, fmt.Errorf("task %d: %w", id, entity.ErrTaskNotFound)
}
