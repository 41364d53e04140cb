package entity

import (
	"errors"
	"fmt"
)

var (
	// Storage errors, one per ErrorKind
	ErrMalformedName   = errors.New("malformed name")
	ErrMissingMetadata = errors.New("metadata not found")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrPermissionLost  = errors.New("storage permission lost")
	ErrArchiveParse    = errors.New("archive line could not be parsed")

	// Board errors
	ErrRowNotFound    = errors.New("row not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrEmptyTitle     = errors.New("title cannot be empty")

	// Archive errors
	ErrArchivedRowNotFound = errors.New("archived row not found")
)

// ErrorKind classifies failures of the storage layer so callers can tell
// fatal errors from recoverable ones.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedName
	KindMissingMetadata
	KindUnknownColumn
	KindPermissionLost
	KindArchiveParse
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedName:
		return "MalformedName"
	case KindMissingMetadata:
		return "MissingMetadata"
	case KindUnknownColumn:
		return "UnknownColumn"
	case KindPermissionLost:
		return "PermissionLost"
	case KindArchiveParse:
		return "ArchiveParseError"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether the caller can continue after an error of this kind.
// PermissionLost asks the user to reconnect; archive parse errors are skipped.
func (k ErrorKind) Recoverable() bool {
	return k == KindPermissionLost || k == KindArchiveParse
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMalformedName:
		return ErrMalformedName
	case KindMissingMetadata:
		return ErrMissingMetadata
	case KindUnknownColumn:
		return ErrUnknownColumn
	case KindPermissionLost:
		return ErrPermissionLost
	case KindArchiveParse:
		return ErrArchiveParse
	default:
		return nil
	}
}

// StorageError is a tagged error raised while reading or writing the board tree
type StorageError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

// NewStorageError creates a StorageError of the given kind
func NewStorageError(kind ErrorKind, path, message string, err error) *StorageError {
	return &StorageError{Kind: kind, Path: path, Message: message, Err: err}
}

func (e *StorageError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same kind
func (e *StorageError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf extracts the ErrorKind from err, or KindUnknown
func KindOf(err error) ErrorKind {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
