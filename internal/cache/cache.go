// Package cache stores serialized reasoning results keyed by a digest of
// the framework and task, so repeated queries over the same graph skip
// recomputation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Store defines the interface for result caching
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from the task name and a canonical
// description of its inputs
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "toulmin:v1:" + hex.EncodeToString(hash[:])
}
