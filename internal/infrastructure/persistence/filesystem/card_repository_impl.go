package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
	"fskanban/internal/infrastructure/persistence/mapper"
	"fskanban/internal/infrastructure/serialization"
	"fskanban/internal/infrastructure/storage"
)

// CardRepositoryImpl implements CardRepository on top of the storage handler
type CardRepositoryImpl struct {
	storage     *storage.Handler
	pathBuilder *PathBuilder
}

// NewCardRepository creates a new filesystem-based card repository
func NewCardRepository(handler *storage.Handler) *CardRepositoryImpl {
	return &CardRepositoryImpl{
		storage:     handler,
		pathBuilder: NewPathBuilder(),
	}
}

var _ repository.CardRepository = (*CardRepositoryImpl)(nil)

// GetCardMetadata reads tasks/<id>/metadata.md
func (r *CardRepositoryImpl) GetCardMetadata(ctx context.Context, id int) (*entity.CardMetadata, error) {
	return r.readMetadata(ctx, r.pathBuilder.CardDir(id))
}

func (r *CardRepositoryImpl) readMetadata(ctx context.Context, dir string) (*entity.CardMetadata, error) {
	data, err := r.storage.ReadFile(ctx, dir, metadataFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	meta, err := mapper.CardMetadataFromStorage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata in %s: %w", dir, err)
	}
	return meta, nil
}

// SaveCardMetadata writes tasks/<id>/metadata.md
func (r *CardRepositoryImpl) SaveCardMetadata(ctx context.Context, meta *entity.CardMetadata) error {
	if meta == nil {
		return fmt.Errorf("failed to save card metadata: nil metadata")
	}
	return r.storage.WriteJSON(ctx, r.pathBuilder.CardDir(meta.ID), metadataFile, mapper.CardMetadataToStorage(meta))
}

// GetCardContent reads tasks/<id>/content.md. A card without content has
// an empty body.
func (r *CardRepositoryImpl) GetCardContent(ctx context.Context, id int) (*entity.ContentFile, error) {
	data, err := r.storage.ReadFile(ctx, r.pathBuilder.CardDir(id), contentFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &entity.ContentFile{Metadata: map[string]any{}}, nil
		}
		return nil, err
	}

	content, err := mapper.ContentFromStorage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load content of card %d: %w", id, err)
	}
	return content, nil
}

// SaveCardContent writes tasks/<id>/content.md
func (r *CardRepositoryImpl) SaveCardContent(ctx context.Context, id int, markdown string, metadata map[string]any) error {
	data, err := mapper.ContentToStorage(markdown, metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize content of card %d: %w", id, err)
	}
	return r.storage.WriteText(ctx, r.pathBuilder.CardDir(id), contentFile, string(data))
}

// DeleteCard removes tasks/<id>
func (r *CardRepositoryImpl) DeleteCard(ctx context.Context, id int) error {
	return r.storage.RemoveDirectory(ctx, r.pathBuilder.CardsRoot(), r.pathBuilder.CardDirName(id))
}

// ListCardIDs returns the ids of every card directory, ascending.
// Directories that are not plain ids are ignored.
func (r *CardRepositoryImpl) ListCardIDs(ctx context.Context) ([]int, error) {
	names, err := r.storage.ListDirectories(ctx, r.pathBuilder.CardsRoot())
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// Summary returns the heading and preview of a card body
func (r *CardRepositoryImpl) Summary(ctx context.Context, id int) (serialization.Summary, error) {
	content, err := r.GetCardContent(ctx, id)
	if err != nil {
		return serialization.Summary{}, err
	}
	return serialization.Summarize(content.Content), nil
}
