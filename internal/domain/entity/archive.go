package entity

// ArchivedColumn lists the task ids a column held when its row was archived
type ArchivedColumn struct {
	ID    int   `json:"id"`
	Tasks []int `json:"tasks"`
}

// ArchivedRow is one line of archive.jsonl
type ArchivedRow struct {
	ID      int              `json:"id"`
	Columns []ArchivedColumn `json:"columns"`
}

// TaskIDs returns every task id parked in the row
func (r ArchivedRow) TaskIDs() []int {
	var ids []int
	for _, c := range r.Columns {
		ids = append(ids, c.Tasks...)
	}
	return ids
}

// ArchiveStored is the archive, most recently archived row first
type ArchiveStored struct {
	Rows []ArchivedRow `json:"rows"`
}

// Find returns the archived row with the given id
func (a *ArchiveStored) Find(id int) (ArchivedRow, bool) {
	if a == nil {
		return ArchivedRow{}, false
	}
	for _, r := range a.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return ArchivedRow{}, false
}

// IDs returns the set of row and task ids held by the archive
func (a *ArchiveStored) IDs() map[int]struct{} {
	ids := make(map[int]struct{})
	if a == nil {
		return ids
	}
	for _, r := range a.Rows {
		ids[r.ID] = struct{}{}
		for _, id := range r.TaskIDs() {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// MaxID returns the highest id held by the archive, or 0
func (a *ArchiveStored) MaxID() int {
	max := 0
	for id := range a.IDs() {
		if id > max {
			max = id
		}
	}
	return max
}
