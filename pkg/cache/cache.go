// Package cache persists downloaded document payloads to a local
// scratch directory and tracks the entries it created.
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

// WriteError is a local persistence failure (disk full, permission
// denied). It is recoverable: callers surface it, they do not crash.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cache write %q: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Cache manages locally cached files.
type Cache struct {
	dir string

	mu      sync.RWMutex
	entries map[string]*models.CacheEntry
	size    int64
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{
		dir:     dir,
		entries: make(map[string]*models.CacheEntry),
	}, nil
}

// SanitizeName replaces every character unsafe for a filesystem path
// with '_'. Only [A-Za-z0-9._-] survive, so a suggested name can never
// escape the cache directory or produce an invalid path.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Write stores a payload under a sanitized version of name and returns
// the local path. Content is written atomically (temp file then rename).
func (c *Cache) Write(name string, r io.Reader) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	safe := SanitizeName(name)
	if safe == "" {
		safe = "unnamed"
	}
	localPath := filepath.Join(c.dir, safe)
	tempPath := localPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", &WriteError{Name: safe, Err: err}
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return "", &WriteError{Name: safe, Err: err}
	}

	if err := os.Rename(tempPath, localPath); err != nil {
		os.Remove(tempPath)
		return "", &WriteError{Name: safe, Err: err}
	}

	if prev, ok := c.entries[localPath]; ok {
		c.size -= prev.Size
	}
	c.entries[localPath] = &models.CacheEntry{
		Name:      safe,
		LocalPath: localPath,
		Size:      written,
		CreatedAt: time.Now(),
	}
	c.size += written

	return localPath, nil
}

// Delete removes a cache entry. It is best-effort and idempotent:
// deleting an already-absent path is not an error.
func (c *Cache) Delete(localPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[localPath]; ok {
		c.size -= entry.Size
		delete(c.entries, localPath)
	}

	err := os.Remove(localPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Contains returns true if path is a live entry of this cache.
func (c *Cache) Contains(localPath string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[localPath]
	return ok
}

// Stats returns the total size and entry count.
func (c *Cache) Stats() (size int64, count int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size, len(c.entries)
}

// List returns all tracked entries.
func (c *Cache) List() []*models.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]*models.CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	return entries
}

// Clear removes every tracked entry and returns how many were removed.
// Removal failures are swallowed; the entry is forgotten either way.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for path, entry := range c.entries {
		os.Remove(path)
		c.size -= entry.Size
		delete(c.entries, path)
		count++
	}
	return count
}

// Sweep removes every regular file in the cache directory, tracked or
// not. Viewer sessions delete their own entries on close; Sweep picks
// up whatever a crashed process left behind.
func (c *Cache) Sweep() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	count := 0
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, de.Name())
		if err := os.Remove(path); err != nil {
			continue
		}
		if entry, ok := c.entries[path]; ok {
			c.size -= entry.Size
			delete(c.entries, path)
		}
		count++
	}
	return count, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}
