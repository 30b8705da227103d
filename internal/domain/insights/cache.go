package insights

import (
	"context"
	"time"
)

// Cache guarda reportes serializados. Implementaciones: adapters/cache/memory y
// adapters/cache/redis. Un miss devuelve ok=false sin error.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const cacheKeyPrefix = "pethealth:report:"

func cacheKey(petID string) string {
	return cacheKeyPrefix + petID
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                     { return nil }
