package mapper

import (
	"encoding/json"
	"slices"

	"fskanban/internal/domain/entity"
)

// ArchivedRowToStorage encodes one archive.jsonl line, without the newline
func ArchivedRowToStorage(row entity.ArchivedRow) ([]byte, error) {
	row.Columns = slices.Clone(row.Columns)
	if row.Columns == nil {
		row.Columns = []entity.ArchivedColumn{}
	}
	for i := range row.Columns {
		if row.Columns[i].Tasks == nil {
			row.Columns[i].Tasks = []int{}
		}
	}
	return json.Marshal(row)
}

// ArchivedRowFromStorage decodes one archive.jsonl line
func ArchivedRowFromStorage(line []byte) (entity.ArchivedRow, error) {
	var row entity.ArchivedRow
	if err := json.Unmarshal(line, &row); err != nil {
		return entity.ArchivedRow{}, entity.NewStorageError(entity.KindArchiveParse, "", "failed to parse archive line", err)
	}
	return row, nil
}
