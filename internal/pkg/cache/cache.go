package cache

import (
	"context"
	"time"
)

// Snapshot caches serialized read-model snapshots. The product and discount
// listings an admin screen filters against are re-read on every load; the
// cache keeps that cheap without changing any decision logic, which always
// runs on the snapshot it is handed.
type Snapshot interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Noop satisfies Snapshot without caching anything. Used when no Redis
// address is configured.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (Noop) Invalidate(_ context.Context, _ string) error {
	return nil
}
