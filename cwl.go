// Package cwl builds a tree of character, word, and line counts for a file
// or a directory hierarchy.
//
// A Builder walks a path and returns an Entry: a *File carrying its counts
// or an error, or a *Directory carrying its children. Errors are recorded on
// the node they belong to and never stop the walk.
//
// Basic usage:
//
//	sel := count.Selection{Words: true, Lines: true}
//	b := cwl.NewBuilder(afero.NewOsFs(), sel, nil, cwl.Callbacks{})
//	root := b.Build("docs", true)
//
// The top-level flag changes one rule only: an empty file is an error when
// it is the path passed by the caller, and a zero-count success anywhere
// below a directory.
package cwl

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/otuschhoff/cwl/pkg/count"
	"github.com/spf13/afero"
)

// Callbacks define optional handlers that are invoked during the build.
// All callbacks are optional (zero value means no callback).
//
// Callbacks run synchronously on the goroutine calling Build. OnFile and
// OnDirectory are invoked once a node is complete, so a directory is
// reported after all of its descendants.
type Callbacks struct {
	// OnFile is called for every *File node, including error nodes.
	OnFile func(f *File)

	// OnDirectory is called for every *Directory node.
	OnDirectory func(d *Directory)

	// OnSkip is called when a child is left out of the tree because it
	// could not be enumerated. For a directory that cannot be listed, path
	// is the directory itself.
	OnSkip func(path string, err error)
}

// Builder turns a filesystem path into an Entry tree.
//
// The selection is fixed at construction and is used for every file in the
// tree. A Builder holds no state between calls to Build.
type Builder struct {
	fs        afero.Fs
	selection count.Selection
	filters   *Filters
	callbacks Callbacks
}

// NewBuilder creates a Builder reading from fsys.
//
// If filters is nil, every child is included.
func NewBuilder(fsys afero.Fs, sel count.Selection, filters *Filters, callbacks Callbacks) *Builder {
	return &Builder{
		fs:        fsys,
		selection: sel,
		filters:   filters,
		callbacks: callbacks,
	}
}

// Build returns the entry for path. The path must exist; callers check
// that first.
//
// isTopLevel is true for the path given by the caller and false for every
// path reached through a directory.
func (b *Builder) Build(path string, isTopLevel bool) Entry {
	info, err := b.fs.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		return b.buildFile(path, isTopLevel)
	case err == nil && info.IsDir():
		return b.buildDirectory(path)
	default:
		return b.file(&File{Name: path, Err: ErrInvalidPath})
	}
}

// buildFile reads path and counts the selected metrics.
func (b *Builder) buildFile(path string, isTopLevel bool) Entry {
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return b.file(&File{Name: path, Err: err})
	}

	if !utf8.Valid(data) {
		return b.file(&File{Name: path, Err: ErrInvalidUTF8})
	}

	if isTopLevel && len(data) == 0 && !b.selection.IsNone() {
		return b.file(&File{Name: path, Err: ErrEmptyFile})
	}

	return b.file(&File{
		Name:   path,
		Counts: count.Compute(string(data), b.selection),
	})
}

// buildDirectory lists the immediate children of path and builds each of
// them. Children that cannot be enumerated are dropped.
func (b *Builder) buildDirectory(path string) Entry {
	dir := &Directory{Name: path}

	infos, err := afero.ReadDir(b.fs, path)
	if err != nil {
		b.skip(path, err)
		return b.directory(dir)
	}

	for _, info := range infos {
		// Some Fs implementations list the directory itself.
		if name := info.Name(); name == "" || name == "." {
			continue
		}
		childPath := joinPath(path, info.Name())

		if _, err := lstat(b.fs, childPath); err != nil {
			b.skip(childPath, err)
			continue
		}

		// Filters see the symlink target, as Build does.
		isDir := false
		if target, err := b.fs.Stat(childPath); err == nil {
			isDir = target.IsDir()
		}
		if !b.filters.Matches(childPath, isDir) {
			continue
		}

		dir.Children = append(dir.Children, b.Build(childPath, false))
	}

	return b.directory(dir)
}

func (b *Builder) file(f *File) Entry {
	if b.callbacks.OnFile != nil {
		b.callbacks.OnFile(f)
	}
	return f
}

func (b *Builder) directory(d *Directory) Entry {
	if b.callbacks.OnDirectory != nil {
		b.callbacks.OnDirectory(d)
	}
	return d
}

func (b *Builder) skip(path string, err error) {
	if b.callbacks.OnSkip != nil {
		b.callbacks.OnSkip(path, err)
	}
}

// joinPath appends name to dir without cleaning dir, so children keep the
// prefix the caller typed ("./docs" gives "./docs/a.txt").
func joinPath(dir, name string) string {
	if dir == "" || os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// lstat stats name without following a final symlink when fsys supports it.
func lstat(fsys afero.Fs, name string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return fsys.Stat(name)
}
