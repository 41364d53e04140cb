package task

import (
	"context"

	"github.com/sahilm/fuzzy"

	"fskanban/internal/application/dto"
)

// SearchTasksUseCase finds tasks by fuzzy title match
type SearchTasksUseCase struct {
	list *ListTasksUseCase
}

// NewSearchTasksUseCase creates a new SearchTasksUseCase
func NewSearchTasksUseCase(list *ListTasksUseCase) *SearchTasksUseCase {
	return &SearchTasksUseCase{list: list}
}

// taskTitles adapts a task list to fuzzy.Source
type taskTitles []dto.TaskDTO

func (t taskTitles) String(i int) string { return t[i].Title }
func (t taskTitles) Len() int            { return len(t) }

// Execute returns matching tasks, best match first. An empty query returns
// every task in board order.
func (uc *SearchTasksUseCase) Execute(ctx context.Context, query string, filter dto.TaskFilter) ([]dto.SearchResultDTO, error) {
	tasks, err := uc.list.Execute(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResultDTO, 0, len(tasks))
	if query == "" {
		for _, t := range tasks {
			results = append(results, dto.SearchResultDTO{TaskDTO: t, MatchedIndexes: []int{}})
		}
		return results, nil
	}

	for _, m := range fuzzy.FindFrom(query, taskTitles(tasks)) {
		results = append(results, dto.SearchResultDTO{
			TaskDTO:        tasks[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return results, nil
}
