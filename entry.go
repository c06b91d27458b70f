package cwl

import (
	"errors"

	"github.com/otuschhoff/cwl/pkg/count"
)

// Distinguished per-file errors. Any other error stored on a File is a read
// failure and is reported with its message unchanged.
var (
	// ErrEmptyFile is set on a top-level file that has no content while at
	// least one metric is selected.
	ErrEmptyFile = errors.New("File is empty")

	// ErrInvalidPath is set on a path that is neither a regular file nor a
	// directory.
	ErrInvalidPath = errors.New("Invalid path")

	// ErrInvalidUTF8 is set on a file whose content is not valid UTF-8.
	// It is reported like any other read failure.
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
)

// Entry is a node of the tree produced by Builder. It is either a *File or a
// *Directory; consumers switch on the concrete type.
type Entry interface {
	// Path returns the filesystem path the entry was built from.
	Path() string

	entry()
}

// File is a leaf of the tree.
//
// Err and the counts are mutually exclusive: when Err is set every count is
// nil. Without an error, exactly the selected metrics are non-nil.
type File struct {
	Name string
	count.Counts
	Err error
}

// Directory holds the entries found one level below Name, in enumeration
// order. Children may be empty.
type Directory struct {
	Name     string
	Children []Entry
}

func (f *File) Path() string { return f.Name }
func (d *Directory) Path() string { return d.Name }

func (*File) entry() {}
func (*Directory) entry() {}

// IsEmpty reports whether the file failed with ErrEmptyFile.
func (f *File) IsEmpty() bool {
	return errors.Is(f.Err, ErrEmptyFile)
}

// IsEmpty reports whether the directory has no children.
func (d *Directory) IsEmpty() bool {
	return len(d.Children) == 0
}
