// Package cache is a small disk-backed memoizer for expensive fetches: the
// puzzle-source scraper uses it to avoid re-fetching the same URL on every
// run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Cache memoizes JSON-serializable results under a directory, keyed by the
// SHA-256 hash of a caller-supplied key. It is not safe for concurrent
// writers targeting the same key.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Get reads and unmarshals the cached value for key into out, reporting
// false if nothing is cached yet.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: reading entry: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("cache: decoding entry: %w", err)
	}
	return true, nil
}

// Put writes value under key, via a temp-file-then-rename so a crash
// mid-write never leaves a corrupt cache entry behind.
func (c *Cache) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encoding entry: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("cache: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.pathFor(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: renaming temp file into place: %w", err)
	}
	return nil
}

// WithCache calls compute and caches its result under key unless a cached
// value already exists, in which case that value is returned instead and
// compute is never called.
func WithCache[T any](c *Cache, key string, compute func() (T, error)) (T, error) {
	var out T
	hit, err := c.Get(key, &out)
	if err != nil {
		return out, err
	}
	if hit {
		return out, nil
	}
	result, err := compute()
	if err != nil {
		return out, err
	}
	if err := c.Put(key, result); err != nil {
		return out, err
	}
	return result, nil
}
