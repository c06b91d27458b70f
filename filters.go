package cwl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// Filters holds the optional criteria that decide which children of a
// directory become part of the tree.
//
// All fields are optional (zero value keeps every child). Criteria are
// combined with AND logic. Filters never apply to the top-level path.
type Filters struct {
	// NameRegex must match the base name of a file. Directories are always kept.
	NameRegex *regexp.Regexp

	// SkipHidden drops children whose name starts with a dot.
	SkipHidden bool

	// Ignore drops children matched by .gitignore rules.
	Ignore gitignore.IgnoreMatcher
}

// Matches reports whether the child at path passes all active filters.
// A nil Filters matches everything.
func (f *Filters) Matches(path string, isDir bool) bool {
	if f == nil {
		return true
	}

	name := filepath.Base(path)

	if f.SkipHidden && strings.HasPrefix(name, ".") {
		return false
	}

	if f.Ignore != nil && f.Ignore.Match(path, isDir) {
		return false
	}

	if f.NameRegex != nil && !isDir && !f.NameRegex.MatchString(name) {
		return false
	}

	return true
}

// LoadGitIgnore parses the .gitignore file in root. Patterns are matched
// against paths below root. It returns a nil matcher when root has no
// .gitignore.
func LoadGitIgnore(fsys afero.Fs, root string) (gitignore.IgnoreMatcher, error) {
	f, err := fsys.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open .gitignore in '%s': %w", root, err)
	}
	defer f.Close()

	return gitignore.NewGitIgnoreFromReader(root, f), nil
}
