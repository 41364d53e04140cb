package mapper

import (
	"encoding/json"
	"fmt"

	"fskanban/internal/domain/entity"
	"fskanban/internal/infrastructure/serialization"
)

// CardMetadataStorage is the JSON shape of metadata.md
type CardMetadataStorage struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type,omitempty"`
	SyncID string `json:"syncId,omitempty"`
}

// CardMetadataToStorage converts card metadata to its stored form
func CardMetadataToStorage(meta *entity.CardMetadata) CardMetadataStorage {
	return CardMetadataStorage{
		ID:     meta.ID,
		Title:  meta.Title,
		Type:   string(meta.Type),
		SyncID: meta.SyncID,
	}
}

// CardMetadataFromStorage parses metadata.md
func CardMetadataFromStorage(data []byte) (*entity.CardMetadata, error) {
	var storage CardMetadataStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("failed to parse card metadata: %w", err)
	}

	cardType := entity.CardType(storage.Type)
	switch cardType {
	case entity.CardTypeRow, entity.CardTypeTask:
	case "":
		cardType = entity.CardTypeTask
	default:
		return nil, fmt.Errorf("unknown card type %q", storage.Type)
	}

	return &entity.CardMetadata{
		ID:     storage.ID,
		Title:  storage.Title,
		Type:   cardType,
		SyncID: storage.SyncID,
	}, nil
}

// ContentToStorage renders content.md
func ContentToStorage(markdown string, metadata map[string]any) ([]byte, error) {
	return serialization.SerializeFrontmatter(metadata, markdown)
}

// ContentFromStorage parses content.md
func ContentFromStorage(data []byte) (*entity.ContentFile, error) {
	doc, err := serialization.ParseFrontmatter(data)
	if err != nil {
		return nil, err
	}
	return &entity.ContentFile{
		Metadata: doc.Frontmatter,
		Content:  doc.Content,
	}, nil
}
