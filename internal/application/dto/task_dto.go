package dto

// TaskDTO represents a task data transfer object
type TaskDTO struct {
	ID         int     `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	RowID      int     `json:"row_id" yaml:"row_id"`
	RowTitle   string  `json:"row_title" yaml:"row_title"`
	ColumnID   int     `json:"column_id" yaml:"column_id"`
	ColumnName string  `json:"column_name" yaml:"column_name"`
	Position   float64 `json:"position" yaml:"position"`
	SyncID     string  `json:"sync_id" yaml:"sync_id"`
	FilePath   string  `json:"file_path,omitempty" yaml:"file_path,omitempty"` // Optional: path to content.md
	Heading    string  `json:"heading,omitempty" yaml:"heading,omitempty"`
	Preview    string  `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// TaskDetailDTO is a task with its card content
type TaskDetailDTO struct {
	TaskDTO     `yaml:",inline"`
	Content     string         `json:"content" yaml:"content"`
	Frontmatter map[string]any `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	RowID      int    `json:"row_id,omitempty"`
	ColumnName string `json:"column_name,omitempty"`
	// WithPreview fills Heading and Preview from each card body
	WithPreview bool `json:"with_preview,omitempty"`
}

// SearchResultDTO is a task matched by a fuzzy title search
type SearchResultDTO struct {
	TaskDTO        `yaml:",inline"`
	Score          int   `json:"score" yaml:"score"`
	MatchedIndexes []int `json:"matched_indexes" yaml:"matched_indexes"`
}
