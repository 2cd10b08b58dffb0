// Package discovery finds browser history databases under profile roots.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/runnerr0/histexport/internal/config"
	"github.com/runnerr0/histexport/internal/history"
)

// ErrNoAccess means a history file exists but the process may not read it.
// It wraps fs.ErrPermission.
var ErrNoAccess = fmt.Errorf("history file not accessible: %w", fs.ErrPermission)

// Well-known database file names inside a profile tree.
const (
	ChromeFile  = "History"
	FirefoxFile = "places.sqlite"
)

// Finder lists candidate history databases.
type Finder struct {
	Roots config.Roots
}

// NewFinder creates a Finder over the given roots.
func NewFinder(roots config.Roots) *Finder {
	return &Finder{Roots: roots}
}

// Candidates returns the history databases for b, sorted. An empty result
// means the browser is not installed or has no profiles.
func (f *Finder) Candidates(b history.Browser) ([]string, error) {
	switch b {
	case history.Chrome:
		return walk(f.Roots.Chrome, ChromeFile), nil
	case history.Firefox:
		return walk(f.Roots.Firefox, FirefoxFile), nil
	case history.Safari:
		return single(f.Roots.Safari)
	default:
		return nil, fmt.Errorf("unsupported browser %q", b)
	}
}

// walk collects regular files named name below root, following symlinked
// files and directories. Each directory is visited once by its resolved
// path, so link cycles terminate. Unreadable entries are skipped and a
// missing root yields nothing.
func walk(root, name string) []string {
	var found []string
	seen := make(map[string]bool)

	var visit func(dir string)
	visit = func(dir string) {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil || seen[resolved] {
			return
		}
		seen[resolved] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			switch {
			case info.IsDir():
				visit(path)
			case info.Mode().IsRegular() && e.Name() == name:
				found = append(found, path)
			}
		}
	}

	visit(root)
	sort.Strings(found)
	return found
}

// single checks one fixed path for existence and readability.
func single(path string) ([]string, error) {
	f, err := os.Open(path)
	switch {
	case err == nil:
		f.Close()
		return []string{path}, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%s: %w", path, ErrNoAccess)
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
}
