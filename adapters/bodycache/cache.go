// Package bodycache resolves body_file_name basenames to file contents,
// searching the files root recursively and memoizing by basename for the
// lifetime of the process.
package bodycache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no file under the files root has the
// requested basename.
type ErrNotFound struct {
	Basename string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("body file not found: %s", e.Basename)
}

// Cache is a process-wide, unbounded basename -> contents memo. The files
// root is fixed for the process, so the basename alone is the effective
// key. Concurrent first-time lookups for the same key may each walk the
// tree (at-least-once read); sync.Map's LoadOrStore guarantees the cache
// settles on a single stable value afterward.
type Cache struct {
	root    string
	entries sync.Map // basename -> string
}

// New creates a cache rooted at the given files directory.
func New(root string) *Cache {
	return &Cache{root: root}
}

// Load resolves basename to its file contents, reading from disk on first
// request and returning the memoized value thereafter.
func (c *Cache) Load(basename string) (string, error) {
	if v, ok := c.entries.Load(basename); ok {
		return v.(string), nil
	}

	contents, err := c.read(basename)
	if err != nil {
		return "", err
	}

	actual, _ := c.entries.LoadOrStore(basename, contents)
	return actual.(string), nil
}

func (c *Cache) read(basename string) (string, error) {
	var found string
	err := filepath.WalkDir(c.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == basename {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan files root %s: %w", c.root, err)
	}
	if found == "" {
		return "", &ErrNotFound{Basename: basename}
	}

	data, err := os.ReadFile(found)
	if err != nil {
		return "", fmt.Errorf("read body file %s: %w", found, err)
	}
	return string(data), nil
}
