// Package cache stores completion responses so re-analyzing a
// transcript does not re-spend tokens on identical prompts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CompletionKey generates a cache key from a model identifier and prompt
func CompletionKey(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "glean:v1:" + hex.EncodeToString(hash[:])
}
