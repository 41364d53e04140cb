package repository

import (
	"context"

	"fskanban/internal/domain/entity"
)

// CardRepository stores per-card metadata and content
type CardRepository interface {
	// GetCardMetadata returns nil and no error when the card has no metadata
	GetCardMetadata(ctx context.Context, id int) (*entity.CardMetadata, error)
	SaveCardMetadata(ctx context.Context, meta *entity.CardMetadata) error

	GetCardContent(ctx context.Context, id int) (*entity.ContentFile, error)
	SaveCardContent(ctx context.Context, id int, markdown string, metadata map[string]any) error

	// DeleteCard removes the card directory permanently
	DeleteCard(ctx context.Context, id int) error

	// ListCardIDs returns the ids of every stored card
	ListCardIDs(ctx context.Context) ([]int, error)
}
