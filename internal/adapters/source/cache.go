package source

import (
	"context"
	"fmt"
	"time"

	"fxconv/internal/adapters"

	"github.com/dgraph-io/ristretto"
)

// CachedSource keeps the last document fetched from the wrapped source for ttl.
type CachedSource struct {
	next  adapters.Source
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedSource(next adapters.Source, maxItems int64, ttl time.Duration) (*CachedSource, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
		// each document costs 1, so MaxCost counts documents
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create document cache failed: %w", err)
	}
	return &CachedSource{next: next, cache: c, ttl: ttl}, nil
}

func (s *CachedSource) Name() string { return s.next.Name() }

// Fetch serves the cached document when present. A non-positive ttl disables
// caching.
func (s *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.ttl <= 0 {
		return s.next.Fetch(ctx)
	}
	key := s.next.Name()
	if v, ok := s.cache.Get(key); ok {
		if body, ok := v.([]byte); ok {
			return body, nil
		}
	}

	body, err := s.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetWithTTL(key, body, 1, s.ttl)
	s.cache.Wait()
	return body, nil
}

// Invalidate drops the cached document so the next Fetch hits the source.
func (s *CachedSource) Invalidate() { s.cache.Del(s.next.Name()) }

func (s *CachedSource) Close() { s.cache.Close() }
