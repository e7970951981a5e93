// Package adapter contains the infrastructure adapters layermap uses to read
// the project under analysis.
package adapter

import (
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	m "layermap.dev/pkg/layermap/internal/model"
)

// DefaultReadCacheSize bounds how many file bodies a single adapter keeps.
const DefaultReadCacheSize = 256

// SourceFSAdapter abstracts the read-only filesystem operations the domain
// layer relies on when scanning a project. It hides direct `os` access so the
// analysis logic can be tested against fixture trees.
//
//nolint:interfacebloat // Read-only traversal needs a handful of primitives.
type SourceFSAdapter interface {
	// Walk lazily yields the entries below root, depth-first. At each level
	// directories come first, then files, each group sorted by name. Excluded
	// directory names are pruned before descent and unreadable directories are
	// skipped.
	Walk(root m.Path, exclude m.ExcludeSet) iter.Seq[m.Entry]

	// IsEmptyDir reports whether path holds no file anywhere in its included
	// subtree. Unreadable directories count as not empty.
	IsEmptyDir(path m.Path, exclude m.ExcludeSet) bool

	// ListDirs returns the sorted names of the immediate, visible, non-excluded
	// subdirectories of path.
	ListDirs(path m.Path, exclude m.ExcludeSet) ([]string, error)

	// ListFiles returns the sorted names of the immediate files of path.
	ListFiles(path m.Path) ([]string, error)

	// ReadFile loads a file's contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter. File reads go
// through a bounded LRU so a run that scans the same file from several
// matchers reads it once. The cache lives as long as the adapter.
type LocalSourceFSAdapter struct {
	reads *lru.Cache[string, []byte]
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter with the default
// read cache size.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewLocalSourceFSAdapterWithCache(DefaultReadCacheSize)
}

// NewLocalSourceFSAdapterWithCache constructs a LocalSourceFSAdapter whose read
// cache holds up to size files. A non-positive size disables caching.
func NewLocalSourceFSAdapterWithCache(size int) *LocalSourceFSAdapter {
	a := &LocalSourceFSAdapter{}

	if size > 0 {
		cache, err := lru.New[string, []byte](size)
		if err == nil {
			a.reads = cache
		}
	}

	return a
}

// Walk yields entries below root in pre-order.
func (a *LocalSourceFSAdapter) Walk(root m.Path, exclude m.ExcludeSet) iter.Seq[m.Entry] {
	return func(yield func(m.Entry) bool) {
		a.walkDir(string(root), "", 1, exclude, yield)
	}
}

func (a *LocalSourceFSAdapter) walkDir(dir, rel string, depth int, exclude m.ExcludeSet, yield func(m.Entry) bool) bool {
	dirs, files, err := readDirSplit(dir, exclude)
	if err != nil {
		slog.Debug("Skipping unreadable directory", "path", dir, "error", err)
		return true
	}

	for _, name := range dirs {
		full := filepath.Join(dir, name)
		childRel := path.Join(rel, name)

		entry := m.Entry{Path: m.Path(full), Rel: m.Path(childRel), Name: name, Depth: depth, IsDir: true}
		if !yield(entry) {
			return false
		}

		if !a.walkDir(full, childRel, depth+1, exclude, yield) {
			return false
		}
	}

	for _, name := range files {
		entry := m.Entry{
			Path:  m.Path(filepath.Join(dir, name)),
			Rel:   m.Path(path.Join(rel, name)),
			Name:  name,
			Depth: depth,
		}
		if !yield(entry) {
			return false
		}
	}

	return true
}

// readDirSplit lists dir and separates included subdirectories from files.
// os.ReadDir already sorts entries by name.
func readDirSplit(dir string, exclude m.ExcludeSet) ([]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var dirs, files []string

	for _, entry := range entries {
		if entry.IsDir() {
			if exclude.Contains(entry.Name()) {
				continue
			}

			dirs = append(dirs, entry.Name())

			continue
		}

		files = append(files, entry.Name())
	}

	return dirs, files, nil
}

// IsEmptyDir short-circuits on the first file found.
func (a *LocalSourceFSAdapter) IsEmptyDir(dirPath m.Path, exclude m.ExcludeSet) bool {
	entries, err := os.ReadDir(string(dirPath))
	if err != nil {
		slog.Debug("Treating unreadable directory as not empty", "path", dirPath, "error", err)
		return false
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			return false
		}

		if exclude.Contains(entry.Name()) {
			continue
		}

		if !a.IsEmptyDir(m.Path(filepath.Join(string(dirPath), entry.Name())), exclude) {
			return false
		}
	}

	return true
}

// ListDirs returns visible child directories of dirPath.
func (a *LocalSourceFSAdapter) ListDirs(dirPath m.Path, exclude m.ExcludeSet) ([]string, error) {
	dirs, _, err := readDirSplit(string(dirPath), exclude)
	if err != nil {
		return nil, err
	}

	visible := dirs[:0]

	for _, name := range dirs {
		if strings.HasPrefix(name, ".") {
			continue
		}

		visible = append(visible, name)
	}

	return visible, nil
}

// ListFiles returns the files directly inside dirPath.
func (a *LocalSourceFSAdapter) ListFiles(dirPath m.Path) ([]string, error) {
	_, files, err := readDirSplit(string(dirPath), nil)
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

// ReadFile loads file contents, consulting the read cache first.
func (a *LocalSourceFSAdapter) ReadFile(filePath m.Path) ([]byte, error) {
	key := string(filePath)

	if a.reads != nil {
		if content, ok := a.reads.Get(key); ok {
			return content, nil
		}
	}

	// #nosec G304 - reading the user's project is the purpose of this tool
	content, err := os.ReadFile(key)
	if err != nil {
		return nil, err
	}

	if a.reads != nil {
		a.reads.Add(key, content)
	}

	return content, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(filePath m.Path) (os.FileInfo, error) {
	return os.Stat(string(filePath))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
