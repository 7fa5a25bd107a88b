package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps entries as JSON files under a root directory, grouped by
// entry kind (graph, layout, artifact). It is the CLI's default backend; the
// kind directories let `arkigraf cache` walk and report the cheap graph
// entries separately from the expensive settled layouts.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating the directory if
// needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope. A zero ExpiresAt means the entry never
// expires.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get reads an entry. Corrupt and expired files read as misses and are
// removed on the way out.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes an entry, creating its kind directory on first use.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl != 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes an entry. A missing file is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; nothing stays open between calls.
func (c *FileCache) Close() error { return nil }

// path maps a key to <dir>/<kind>/<digest>.json. Keys carry their entry kind
// as a "<kind>:" prefix; a key without one lands directly under the root.
func (c *FileCache) path(key string) string {
	kind, rest, ok := strings.Cut(key, ":")
	if !ok {
		return filepath.Join(c.dir, Hash([]byte(key))+".json")
	}
	return filepath.Join(c.dir, kind, Hash([]byte(rest))+".json")
}

var _ Cache = (*FileCache)(nil)
