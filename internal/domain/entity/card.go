package entity

import (
	"strings"

	"github.com/google/uuid"
)

// CardType distinguishes row cards from task cards in metadata
type CardType string

const (
	CardTypeRow  CardType = "row"
	CardTypeTask CardType = "task"
)

// CardMetadata is the content of tasks/<id>/metadata.md
type CardMetadata struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Type   CardType `json:"type"`
	SyncID string   `json:"syncId"`
}

// ContentFile is a parsed tasks/<id>/content.md
type ContentFile struct {
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
	Content  string         `json:"content" yaml:"content"`
}

// NewSyncID mints a short random sync identifier.
// It never contains characters the filename codec treats as separators.
func NewSyncID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
