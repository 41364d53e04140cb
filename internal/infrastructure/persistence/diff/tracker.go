// Package diff computes the creates and removes that converge a directory
// tree to a desired shape.
package diff

import (
	"context"
	"path"
	"sort"
	"strings"

	"fskanban/internal/infrastructure/storage"
)

// Kind tells files from directories
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is one file or directory, keyed by its slash-separated Path
type Entry struct {
	Name    string
	Path    string
	Kind    Kind
	Content string
}

// Func is called for each entry a pass creates or removes
type Func func(ctx context.Context, e Entry) error

// Plan lists the work the tracker would do
type Plan struct {
	Creates []Entry
	Removes []Entry
}

// Empty reports whether the plan changes nothing
func (p Plan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Removes) == 0
}

type entrySet struct {
	entries map[string]Entry
	order   []string
}

func newEntrySet() *entrySet {
	return &entrySet{entries: make(map[string]Entry)}
}

func (s *entrySet) add(e Entry) {
	if _, ok := s.entries[e.Path]; !ok {
		s.order = append(s.order, e.Path)
	}
	s.entries[e.Path] = e
}

func (s *entrySet) has(p string) bool {
	_, ok := s.entries[p]
	return ok
}

// Tracker accumulates the desired and existing entries below root.
// root itself is never created or removed.
type Tracker struct {
	root     string
	desired  *entrySet
	existing *entrySet
}

// NewTracker creates a tracker for the tree below root
func NewTracker(root string) *Tracker {
	return &Tracker{
		root:     strings.Trim(root, "/"),
		desired:  newEntrySet(),
		existing: newEntrySet(),
	}
}

// AddDesired registers an entry the tree should contain, preceded by any
// parent directories not registered yet.
func (t *Tracker) AddDesired(e Entry) {
	t.addWithParents(t.desired, e)
}

// AddExisting registers an entry the tree currently contains
func (t *Tracker) AddExisting(e Entry) {
	t.addWithParents(t.existing, e)
}

// LoadExisting registers every entry of a snapshot taken at root. Hidden
// entries and everything below them are left out, so they are never removed.
func (t *Tracker) LoadExisting(tree *storage.Tree) {
	tree.Walk(func(rel string, isDir bool) {
		if hidden(rel) {
			return
		}
		kind := KindFile
		if isDir {
			kind = KindDir
		}
		p := path.Join(t.root, rel)
		t.existing.add(Entry{Name: path.Base(p), Path: p, Kind: kind})
	})
}

func (t *Tracker) addWithParents(set *entrySet, e Entry) {
	e.Path = strings.Trim(e.Path, "/")
	if e.Name == "" {
		e.Name = path.Base(e.Path)
	}

	segments := strings.Split(e.Path, "/")
	for i := 1; i < len(segments); i++ {
		p := strings.Join(segments[:i], "/")
		if !t.below(p) || set.has(p) {
			continue
		}
		set.add(Entry{Name: segments[i-1], Path: p, Kind: KindDir})
	}
	set.add(e)
}

func hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func (t *Tracker) below(p string) bool {
	if t.root == "" {
		return true
	}
	return strings.HasPrefix(p, t.root+"/")
}

// Plan computes the pending creates (registration order) and removes
// (deepest first) without running them.
func (t *Tracker) Plan() Plan {
	var plan Plan
	for _, p := range t.desired.order {
		if !t.existing.has(p) {
			plan.Creates = append(plan.Creates, t.desired.entries[p])
		}
	}

	for _, p := range t.existing.order {
		if !t.desired.has(p) {
			plan.Removes = append(plan.Removes, t.existing.entries[p])
		}
	}
	sort.SliceStable(plan.Removes, func(i, j int) bool {
		di, dj := depth(plan.Removes[i].Path), depth(plan.Removes[j].Path)
		if di != dj {
			return di > dj
		}
		return plan.Removes[i].Path < plan.Removes[j].Path
	})
	return plan
}

// CreateAll creates every desired entry missing from the existing set, in
// the order the entries were registered.
func (t *Tracker) CreateAll(ctx context.Context, writeFile, createDir Func) error {
	for _, e := range t.Plan().Creates {
		if err := apply(ctx, e, writeFile, createDir); err != nil {
			return err
		}
	}
	return nil
}

// RemoveUnneeded removes every existing entry that is not desired, deepest
// paths first so directories are emptied before they go.
func (t *Tracker) RemoveUnneeded(ctx context.Context, removeFile, removeDir Func) error {
	for _, e := range t.Plan().Removes {
		if err := apply(ctx, e, removeFile, removeDir); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, e Entry, onFile, onDir Func) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Kind == KindDir {
		return onDir(ctx, e)
	}
	return onFile(ctx, e)
}

func depth(p string) int {
	return strings.Count(p, "/") + 1
}
