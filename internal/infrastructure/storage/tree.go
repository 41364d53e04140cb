package storage

import (
	"path"
	"sort"
)

// Tree is a detached snapshot of a directory: file names and child
// directories, with no handles into the underlying filesystem.
type Tree struct {
	Name  string
	Files []string
	Dirs  []Tree
}

// Dir returns the child directory with the given name
func (t *Tree) Dir(name string) (*Tree, bool) {
	for i := range t.Dirs {
		if t.Dirs[i].Name == name {
			return &t.Dirs[i], true
		}
	}
	return nil, false
}

// DirNames returns the names of the child directories
func (t *Tree) DirNames() []string {
	names := make([]string, 0, len(t.Dirs))
	for _, d := range t.Dirs {
		names = append(names, d.Name)
	}
	return names
}

// Walk visits every entry below t in pre-order. rel is slash-separated and
// relative to t; a directory is visited before its contents.
func (t *Tree) Walk(fn func(rel string, isDir bool)) {
	t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(rel string, isDir bool)) {
	for _, f := range t.Files {
		fn(path.Join(prefix, f), false)
	}
	for i := range t.Dirs {
		rel := path.Join(prefix, t.Dirs[i].Name)
		fn(rel, true)
		t.Dirs[i].walk(rel, fn)
	}
}

func (t *Tree) sort() {
	sort.Strings(t.Files)
	sort.Slice(t.Dirs, func(i, j int) bool { return t.Dirs[i].Name < t.Dirs[j].Name })
}
