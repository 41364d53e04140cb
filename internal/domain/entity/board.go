package entity

import (
	"slices"
	"sort"
)

// Known column ids
const (
	ColumnToDo       = 1
	ColumnInProgress = 2
	ColumnDone       = 3
)

// Column is one of the fixed board columns. Columns are identified by title on disk.
type Column struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// DefaultColumns returns the fixed column set in display order
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnToDo, Title: "To Do"},
		{ID: ColumnInProgress, Title: "In Progress"},
		{ID: ColumnDone, Title: "Done"},
	}
}

// ColumnByTitle looks up a known column by its directory title
func ColumnByTitle(title string) (Column, bool) {
	for _, c := range DefaultColumns() {
		if c.Title == title {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnByID looks up a known column by id
func ColumnByID(id int) (Column, bool) {
	for _, c := range DefaultColumns() {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Row is a swimlane of the board
type Row struct {
	ID       int     `json:"id" yaml:"id"`
	Position float64 `json:"position" yaml:"position"`
	SyncID   string  `json:"syncId" yaml:"sync_id"`
}

// Container is the complete in-memory board state
type Container struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	Tasks   []Task   `json:"tasks" yaml:"tasks"`
}

// NewContainer returns the default board: known columns, no rows or tasks
func NewContainer() *Container {
	return &Container{
		Columns: DefaultColumns(),
		Rows:    []Row{},
		Tasks:   []Task{},
	}
}

// Clone returns a deep copy of the container
func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}
	return &Container{
		Columns: slices.Clone(c.Columns),
		Rows:    slices.Clone(c.Rows),
		Tasks:   slices.Clone(c.Tasks),
	}
}

// SortByPosition orders rows and tasks by ascending position, keeping the
// existing order for equal positions.
func (c *Container) SortByPosition() {
	sort.SliceStable(c.Rows, func(i, j int) bool {
		return c.Rows[i].Position < c.Rows[j].Position
	})
	sort.SliceStable(c.Tasks, func(i, j int) bool {
		return c.Tasks[i].Position < c.Tasks[j].Position
	})
}

// FindRow returns the index of the row with the given id, or -1
func (c *Container) FindRow(id int) int {
	return slices.IndexFunc(c.Rows, func(r Row) bool { return r.ID == id })
}

// FindTask returns the index of the task with the given id, or -1
func (c *Container) FindTask(id int) int {
	return slices.IndexFunc(c.Tasks, func(t Task) bool { return t.ID == id })
}

// TasksIn returns the tasks of one (row, column) cell in container order
func (c *Container) TasksIn(rowID, columnID int) []Task {
	var out []Task
	for _, t := range c.Tasks {
		if t.RowID == rowID && t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

// MaxID returns the highest numeric id used by live rows, live tasks and
// the archive. archive may be nil.
func (c *Container) MaxID(archive *ArchiveStored) int {
	max := 0
	for _, r := range c.Rows {
		if r.ID > max {
			max = r.ID
		}
	}
	for _, t := range c.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	if m := archive.MaxID(); m > max {
		max = m
	}
	return max
}

// Reassignment records a duplicate id that was replaced during load
type Reassignment struct {
	Type   CardType `json:"type" yaml:"type"`
	OldID  int      `json:"oldId" yaml:"old_id"`
	NewID  int      `json:"newId" yaml:"new_id"`
	SyncID string   `json:"syncId" yaml:"sync_id"`
}
