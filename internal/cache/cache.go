package cache

import (
	"context"
	"time"
)

// Cache is the shared cache tier behind the in-process translation LRU.
// Implementations must tolerate concurrent use; a miss is (false, nil).
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
