// Package modpath maintains the ordered module and resource search path.
//
// Directories added later take priority: Prepend inserts at the front, so
// the last --path given on the command line is searched first.
package modpath

import (
	"errors"
	"fmt"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/Lucioric2000/openshot-qt/internal/system"
)

// ErrNotFound is returned by Find when no root contains the name.
var ErrNotFound = errors.New("not found on module path")

// SearchPath is an ordered list of root directories, highest priority first.
type SearchPath struct {
	dirs []string
}

// New returns a search path seeded with dirs in priority order.
func New(dirs ...string) *SearchPath {
	return &SearchPath{dirs: append([]string(nil), dirs...)}
}

// Prepend inserts dir ahead of every existing entry.
func (p *SearchPath) Prepend(dir string) {
	p.dirs = append([]string{dir}, p.dirs...)
}

// Dirs returns a copy of the roots in priority order.
func (p *SearchPath) Dirs() []string {
	return append([]string(nil), p.dirs...)
}

// Len returns the number of roots.
func (p *SearchPath) Len() int {
	return len(p.dirs)
}

func (p *SearchPath) String() string {
	return strings.Join(p.dirs, ":")
}

// Find returns the first root-relative path to name that exists.
// Each candidate is built with SecureJoin, so a name cannot escape its root.
func (p *SearchPath) Find(fsys system.FileSystem, name string) (string, error) {
	for _, root := range p.dirs {
		candidate, err := securejoin.SecureJoin(root, name)
		if err != nil {
			continue
		}
		if fsys.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Resolve turns a raw --path argument into an absolute, symlink-free path.
// A path that does not exist resolves to its absolute form; callers check
// existence separately.
func Resolve(fsys system.FileSystem, raw string) (string, error) {
	if raw == "" {
		return "", errors.New("empty path")
	}
	if strings.ContainsRune(raw, 0) {
		return "", errors.New("path contains NUL byte")
	}

	abs, err := fsys.Abs(raw)
	if err != nil {
		return "", err
	}

	if real, err := fsys.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
