package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"fskanban/internal/domain/entity"
	"fskanban/pkg/filesystem"
)

const tempFilePrefix = ".tmp-"

// Handler is the storage backend shared by the board, card and archive
// repositories. Paths are relative to the root of the underlying fs.
type Handler struct {
	fs afero.Fs
}

// NewHandler wraps an afero filesystem
func NewHandler(fs afero.Fs) *Handler {
	return &Handler{fs: fs}
}

// NewOsHandler creates a handler rooted at dir on the real filesystem
func NewOsHandler(dir string) (*Handler, error) {
	if err := filesystem.EnsureDir(afero.NewOsFs(), dir, 0755); err != nil {
		return nil, err
	}
	return NewHandler(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// Fs exposes the underlying filesystem
func (h *Handler) Fs() afero.Fs {
	return h.fs
}

// ListDirectories returns the sorted names of the directories in dir.
// A missing dir has no children.
func (h *Handler) ListDirectories(ctx context.Context, dir string) ([]string, error) {
	return h.list(ctx, dir, true)
}

// ListFiles returns the sorted names of the regular files in dir
func (h *Handler) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return h.list(ctx, dir, false)
}

func (h *Handler) list(ctx context.Context, dir string, dirs bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(h.fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, wrapError("list directory", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() != dirs || strings.HasPrefix(e.Name(), tempFilePrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// LoadTree snapshots dir recursively. A missing dir yields an empty tree.
func (h *Handler) LoadTree(ctx context.Context, dir string) (*Tree, error) {
	tree := &Tree{Name: filepath.Base(dir)}
	if err := h.loadInto(ctx, dir, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (h *Handler) loadInto(ctx context.Context, dir string, tree *Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := afero.ReadDir(h.fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return wrapError("read directory", dir, err)
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempFilePrefix) {
			continue
		}
		if !e.IsDir() {
			tree.Files = append(tree.Files, e.Name())
			continue
		}
		child := Tree{Name: e.Name()}
		if err := h.loadInto(ctx, filepath.Join(dir, e.Name()), &child); err != nil {
			return err
		}
		tree.Dirs = append(tree.Dirs, child)
	}
	tree.sort()
	return nil
}

// ReadFile returns the content of dir/name. Missing files report an error
// matching os.ErrNotExist.
func (h *Handler) ReadFile(ctx context.Context, dir, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := filepath.Join(dir, name)
	data, err := afero.ReadFile(h.fs, p)
	if err != nil {
		return nil, wrapError("read file", p, err)
	}
	return data, nil
}

// WriteText atomically replaces dir/name with content
func (h *Handler) WriteText(ctx context.Context, dir, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := filepath.Join(dir, name)
	if err := filesystem.SafeWrite(h.fs, p, []byte(content), 0644); err != nil {
		return wrapError("write file", p, err)
	}
	return nil
}

// WriteJSON stores v as indented JSON in dir/name
func (h *Handler) WriteJSON(ctx context.Context, dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return h.WriteText(ctx, dir, name, string(data))
}

// AppendLine appends a single line to dir/name
func (h *Handler) AppendLine(ctx context.Context, dir, name string, line []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := filepath.Join(dir, name)
	if err := filesystem.AppendLine(h.fs, p, line); err != nil {
		return wrapError("append to file", p, err)
	}
	return nil
}

// CreateDirectory creates dir and any missing parents
func (h *Handler) CreateDirectory(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := filesystem.EnsureDir(h.fs, dir, 0755); err != nil {
		return wrapError("create directory", dir, err)
	}
	return nil
}

// RemoveDirectory removes dir/name and everything below it
func (h *Handler) RemoveDirectory(ctx context.Context, dir, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := filepath.Join(dir, name)
	if err := filesystem.RemoveDir(h.fs, p); err != nil {
		return wrapError("remove directory", p, err)
	}
	return nil
}

// DeleteFile removes dir/name. Deleting a missing file is not an error.
func (h *Handler) DeleteFile(ctx context.Context, dir, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := filepath.Join(dir, name)
	if err := h.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return wrapError("delete file", p, err)
	}
	return nil
}

// RenameDirectory renames the entry addressed by segments to newName,
// keeping it in the same parent directory.
func (h *Handler) RenameDirectory(ctx context.Context, segments []string, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("failed to rename: empty path")
	}

	from := filepath.Join(segments...)
	to := filepath.Join(append(segments[:len(segments)-1:len(segments)-1], newName)...)
	if err := h.fs.Rename(from, to); err != nil {
		return wrapError("rename", from, err)
	}
	return nil
}

// CopyDirectory copies dir/name to dir/newName
func (h *Handler) CopyDirectory(ctx context.Context, dir, name, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := filepath.Join(dir, name)
	if err := filesystem.CopyDir(h.fs, from, filepath.Join(dir, newName)); err != nil {
		return wrapError("copy", from, err)
	}
	return nil
}

// Exists reports whether p exists
func (h *Handler) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ok, err := filesystem.Exists(h.fs, p)
	if err != nil {
		return false, wrapError("stat", p, err)
	}
	return ok, nil
}

func wrapError(op, p string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return entity.NewStorageError(entity.KindPermissionLost, p, "failed to "+op, err)
	}
	return fmt.Errorf("failed to %s %s: %w", op, p, err)
}
