package dto

import "fskanban/internal/domain/entity"

// BoardDTO is the board laid out for display: rows, each split into cells
type BoardDTO struct {
	Columns []ColumnDTO `json:"columns" yaml:"columns"`
	Rows    []RowDTO    `json:"rows" yaml:"rows"`
}

// ColumnDTO represents one of the fixed columns
type ColumnDTO struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// RowDTO represents a row and its cells in column order
type RowDTO struct {
	ID       int       `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Position float64   `json:"position" yaml:"position"`
	SyncID   string    `json:"sync_id" yaml:"sync_id"`
	Cells    []CellDTO `json:"cells" yaml:"cells"`
}

// CellDTO holds the tasks of one (row, column) cell
type CellDTO struct {
	ColumnID   int       `json:"column_id" yaml:"column_id"`
	ColumnName string    `json:"column_name" yaml:"column_name"`
	Tasks      []TaskDTO `json:"tasks" yaml:"tasks"`
}

// TaskCount returns the number of tasks in the row
func (r RowDTO) TaskCount() int {
	n := 0
	for _, c := range r.Cells {
		n += len(c.Tasks)
	}
	return n
}

// ReassignmentDTO reports a duplicate id repaired on load
type ReassignmentDTO struct {
	Type   string `json:"type" yaml:"type"`
	OldID  int    `json:"old_id" yaml:"old_id"`
	NewID  int    `json:"new_id" yaml:"new_id"`
	SyncID string `json:"sync_id" yaml:"sync_id"`
}

// PlanDTO lists the board paths a save would create and remove
type PlanDTO struct {
	Creates []string `json:"creates" yaml:"creates"`
	Removes []string `json:"removes" yaml:"removes"`
}

// Empty reports whether the plan changes nothing
func (p PlanDTO) Empty() bool {
	return len(p.Creates) == 0 && len(p.Removes) == 0
}

// ArchivedRowDTO represents an archived row
type ArchivedRowDTO struct {
	ID      int                 `json:"id" yaml:"id"`
	Title   string              `json:"title" yaml:"title"`
	Columns []ArchivedColumnDTO `json:"columns" yaml:"columns"`
}

// ArchivedColumnDTO lists the tasks a column held when its row was archived
type ArchivedColumnDTO struct {
	ID    int               `json:"id" yaml:"id"`
	Title string            `json:"title" yaml:"title"`
	Tasks []ArchivedTaskDTO `json:"tasks" yaml:"tasks"`
}

// ArchivedTaskDTO identifies an archived task
type ArchivedTaskDTO struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// ReassignmentsToDTO converts a repair report
func ReassignmentsToDTO(report []entity.Reassignment) []ReassignmentDTO {
	out := make([]ReassignmentDTO, 0, len(report))
	for _, r := range report {
		out = append(out, ReassignmentDTO{
			Type:   string(r.Type),
			OldID:  r.OldID,
			NewID:  r.NewID,
			SyncID: r.SyncID,
		})
	}
	return out
}

// BoardToDTO lays out a container using card titles from titles
func BoardToDTO(c *entity.Container, titles map[int]string) *BoardDTO {
	board := &BoardDTO{
		Columns: make([]ColumnDTO, 0, len(c.Columns)),
		Rows:    make([]RowDTO, 0, len(c.Rows)),
	}
	for _, col := range c.Columns {
		board.Columns = append(board.Columns, ColumnDTO{ID: col.ID, Title: col.Title})
	}

	for _, r := range c.Rows {
		row := RowDTO{
			ID:       r.ID,
			Title:    titles[r.ID],
			Position: r.Position,
			SyncID:   r.SyncID,
			Cells:    make([]CellDTO, 0, len(c.Columns)),
		}
		for _, col := range c.Columns {
			cell := CellDTO{ColumnID: col.ID, ColumnName: col.Title, Tasks: []TaskDTO{}}
			for _, t := range c.TasksIn(r.ID, col.ID) {
				cell.Tasks = append(cell.Tasks, TaskToDTO(t, titles[t.ID], titles[r.ID], col.Title))
			}
			row.Cells = append(row.Cells, cell)
		}
		board.Rows = append(board.Rows, row)
	}
	return board
}

// TaskToDTO converts a task
func TaskToDTO(t entity.Task, title, rowTitle, columnName string) TaskDTO {
	return TaskDTO{
		ID:         t.ID,
		Title:      title,
		RowID:      t.RowID,
		RowTitle:   rowTitle,
		ColumnID:   t.ColumnID,
		ColumnName: columnName,
		Position:   t.Position,
		SyncID:     t.SyncID,
	}
}

// CardIDs returns every row and task id of a container
func CardIDs(c *entity.Container) []int {
	ids := make([]int, 0, len(c.Rows)+len(c.Tasks))
	for _, r := range c.Rows {
		ids = append(ids, r.ID)
	}
	for _, t := range c.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// CardDTO identifies a row or task card by its metadata
type CardDTO struct {
	ID     int    `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Type   string `json:"type" yaml:"type"`
	SyncID string `json:"sync_id" yaml:"sync_id"`
}

// CardToDTO converts card metadata
func CardToDTO(meta *entity.CardMetadata) CardDTO {
	return CardDTO{
		ID:     meta.ID,
		Title:  meta.Title,
		Type:   string(meta.Type),
		SyncID: meta.SyncID,
	}
}

// ArchivedRowToDTO converts an archived row using card titles from titles
func ArchivedRowToDTO(r entity.ArchivedRow, titles map[int]string) ArchivedRowDTO {
	row := ArchivedRowDTO{
		ID:      r.ID,
		Title:   titles[r.ID],
		Columns: make([]ArchivedColumnDTO, 0, len(r.Columns)),
	}
	for _, c := range r.Columns {
		col := ArchivedColumnDTO{ID: c.ID, Tasks: make([]ArchivedTaskDTO, 0, len(c.Tasks))}
		if known, ok := entity.ColumnByID(c.ID); ok {
			col.Title = known.Title
		}
		for _, id := range c.Tasks {
			col.Tasks = append(col.Tasks, ArchivedTaskDTO{ID: id, Title: titles[id]})
		}
		row.Columns = append(row.Columns, col)
	}
	return row
}
