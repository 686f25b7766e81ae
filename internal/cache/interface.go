package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values under string keys with an expiry.
type Cache interface {
	// Get decodes the stored value into value and reports whether the key existed.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix = "product"
	SessionKeyPrefix = "session"

	// ProductListKey holds the whole catalog listing.
	ProductListKey = ProductKeyPrefix + ":all"
)
