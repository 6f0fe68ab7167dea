package cache

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// CacheService stores fetched page bodies and per-host cooldown markers so
// repeated searches do not hammer the same shops.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// IsMiss reports whether err means the key was simply absent.
func IsMiss(err error) bool {
	return errors.Is(err, memcache.ErrCacheMiss)
}
