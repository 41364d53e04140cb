// Package codec encodes card identity into board directory and file names.
//
// A name has the form "<title> (<id>, <syncId>, <position>)", optionally
// followed by ".md" for task files. Only the triple is read back; titles
// live in card metadata.
package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fskanban/internal/domain/entity"
	"fskanban/pkg/slug"
)

// FileExtension is appended to task file names
const FileExtension = ".md"

var tripleRegex = regexp.MustCompile(`\((\d+),\s*([^,()\s]+),\s*(-?\d+(?:\.\d+)?)\)`)

// Triple is the identity encoded in a name
type Triple struct {
	ID       int
	SyncID   string
	Position float64
}

// Encode builds a row directory name
func Encode(title string, id int, syncID string, position float64) string {
	return fmt.Sprintf("%s (%d, %s, %s)", slug.Sanitize(title), id, syncID, FormatPosition(position))
}

// EncodeFile builds a task file name
func EncodeFile(title string, id int, syncID string, position float64) string {
	return Encode(title, id, syncID, position) + FileExtension
}

// FormatPosition renders a position without trailing zeros or exponents
func FormatPosition(position float64) string {
	return strconv.FormatFloat(position, 'f', -1, 64)
}

// Decode extracts the triple from a row or task name. When a name holds
// several triples the last one wins.
func Decode(name string) (Triple, error) {
	matches := tripleRegex.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return Triple{}, malformed(name, nil)
	}
	m := matches[len(matches)-1]

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return Triple{}, malformed(name, err)
	}
	position, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Triple{}, malformed(name, err)
	}

	return Triple{ID: id, SyncID: m[2], Position: position}, nil
}

func malformed(name string, err error) error {
	return entity.NewStorageError(entity.KindMalformedName, name, "malformed name", err)
}

// Title returns the title part of an encoded name: everything before the
// last triple, without the file extension.
func Title(name string) string {
	name = strings.TrimSuffix(name, FileExtension)
	loc := tripleRegex.FindAllStringIndex(name, -1)
	if len(loc) == 0 {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(name[:loc[len(loc)-1][0]])
}
