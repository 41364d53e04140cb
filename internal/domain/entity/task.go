package entity

// Task is a card placed in exactly one (column, row) cell
type Task struct {
	ID       int     `json:"id" yaml:"id"`
	ColumnID int     `json:"columnId" yaml:"column_id"`
	RowID    int     `json:"rowId" yaml:"row_id"`
	Position float64 `json:"position" yaml:"position"`
	SyncID   string  `json:"syncId" yaml:"sync_id"`
}
