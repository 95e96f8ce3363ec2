package responsecache

import (
	"context"
	"time"

	"github.com/riskibarqy/film-grading/internal/platform/cache"
)

// Memory keeps provider bodies in process. A per-call ttl <= 0 uses the
// store default.
type Memory struct {
	store *cache.Store[[]byte]
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{store: cache.NewStore[[]byte](ttl)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok := m.store.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.SetFor(ctx, key, append([]byte(nil), value...), ttl)
	return nil
}
