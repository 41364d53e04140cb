package repository

import (
	"context"

	"fskanban/internal/domain/entity"
)

// BoardRepository defines the interface for board persistence
type BoardRepository interface {
	// GetKanbanState loads the board. It returns nil and no error when the
	// board has no rows yet.
	GetKanbanState(ctx context.Context) (*entity.Container, error)

	// SaveKanbanState converges the stored board to the container
	SaveKanbanState(ctx context.Context, c *entity.Container) error

	// CheckKanbanState reloads the board bypassing the cache and reports the
	// id repairs that were applied
	CheckKanbanState(ctx context.Context) (*entity.Container, []entity.Reassignment, error)

	// PlanKanbanState reports the paths a save of c would create and remove
	PlanKanbanState(ctx context.Context, c *entity.Container) (creates, removes []string, err error)

	// Invalidate drops any cached board state
	Invalidate()
}
