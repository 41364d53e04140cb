package filesystem

import (
	"fmt"
	"path"
	"strconv"
)

const (
	boardDirName  = "board"
	cardsDirName  = "tasks"
	metadataFile  = "metadata.md"
	contentFile   = "content.md"
	archiveFile   = "archive.jsonl"
	boardLockFile = ".board.lock"
)

// PathBuilder constructs slash-separated paths relative to the data root
type PathBuilder struct{}

// NewPathBuilder creates a new PathBuilder
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// BoardRoot returns the directory holding one directory per row
func (pb *PathBuilder) BoardRoot() string {
	return boardDirName
}

// RowDir returns the directory path for a row
func (pb *PathBuilder) RowDir(rowName string) string {
	return path.Join(boardDirName, rowName)
}

// ColumnDir returns the directory path for a column inside a row
func (pb *PathBuilder) ColumnDir(rowName, columnTitle string) string {
	return path.Join(pb.RowDir(rowName), columnTitle)
}

// TaskFile returns the path of a task file
func (pb *PathBuilder) TaskFile(rowName, columnTitle, fileName string) string {
	return path.Join(pb.ColumnDir(rowName, columnTitle), fileName)
}

// CardsRoot returns the directory holding per-card directories
func (pb *PathBuilder) CardsRoot() string {
	return cardsDirName
}

// CardDirName returns the name of a card's directory
func (pb *PathBuilder) CardDirName(id int) string {
	return strconv.Itoa(id)
}

// CardVariantDirName returns the sync-disambiguated directory name that
// copies of a card directory may carry
func (pb *PathBuilder) CardVariantDirName(id int, syncID string) string {
	return fmt.Sprintf("%d (%s)", id, syncID)
}

// CardDir returns the directory path for a card
func (pb *PathBuilder) CardDir(id int) string {
	return path.Join(cardsDirName, pb.CardDirName(id))
}

// CardMetadata returns the path to a card's metadata.md file
func (pb *PathBuilder) CardMetadata(id int) string {
	return path.Join(pb.CardDir(id), metadataFile)
}

// CardContent returns the path to a card's content.md file
func (pb *PathBuilder) CardContent(id int) string {
	return path.Join(pb.CardDir(id), contentFile)
}

// ArchiveFile returns the path of the archive log
func (pb *PathBuilder) ArchiveFile() string {
	return archiveFile
}

// Transclusion returns the body of a task file: an embed of the card content
func (pb *PathBuilder) Transclusion(id int) string {
	return fmt.Sprintf("![[%s]]", pb.CardContent(id))
}
