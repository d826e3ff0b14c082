package cache

import (
	"context"
	"time"
)

// Cache is a small get/set abstraction over the shared cache. Implementations
// must be safe for concurrent use. A miss is reported by ok=false, never by
// an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Noop satisfies Cache without storing anything. Used when no Redis address
// is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }

func (Noop) Set(ctx context.Context, key string, value string, ttl time.Duration) error { return nil }
