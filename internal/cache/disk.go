package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists completion responses across runs, so re-analyzing
// an unchanged transcript costs no tokens even after a restart. Each
// completion lives in its own JSON file named by its CompletionKey.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache creates a disk cache rooted at dir. The directory is
// created lazily on the first write.
func NewDiskCache(dir string, defaultTTL time.Duration) *DiskCache {
	return &DiskCache{
		dir:        dir,
		defaultTTL: defaultTTL,
	}
}

// storedCompletion is the on-disk record for one cached completion
type storedCompletion struct {
	Completion string    `json:"completion"`
	SavedAt    time.Time `json:"saved_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Get returns the cached completion for key. Expired and unparseable
// records are removed and reported as misses.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	file := c.file(key)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false
	}

	var rec storedCompletion
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(file)
		return nil, false
	}

	if time.Now().After(rec.ExpiresAt) {
		_ = os.Remove(file)
		return nil, false
	}

	return []byte(rec.Completion), true
}

// Set writes a completion record for key. ttl 0 falls back to the
// configured default.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	now := time.Now()
	rec := storedCompletion{
		Completion: string(value),
		SavedAt:    now,
		ExpiresAt:  now.Add(ttl),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal completion record: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.file(key), data, 0o644); err != nil {
		return fmt.Errorf("write completion record: %w", err)
	}

	return nil
}

// Delete removes the record for key
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.file(key))
}

// Clear removes the whole cache directory
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) file(key string) string {
	return filepath.Join(c.dir, key+".json")
}
