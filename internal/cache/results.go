package cache

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/katalvlaran/spacegrid/escape"
	"github.com/katalvlaran/spacegrid/grid"
)

// keyPrefix namespaces result entries inside a shared backend.
const keyPrefix = "escape:"

// Results caches escape results as JSON snapshots on top of a Cache.
type Results struct {
	cache Cache
	ttl   time.Duration
	opts  []escape.Option
}

// Entry is the outcome of Results.Solve.
type Entry struct {
	Key    string
	Result *escape.Result
	Cached bool

	// CacheErr is a backend failure that Solve worked around. The result
	// is still valid when it is set.
	CacheErr error
}

// NewResults stores snapshots in c for ttl. opts are passed to
// escape.Compute and escape.Restore.
func NewResults(c Cache, ttl time.Duration, opts ...escape.Option) *Results {
	return &Results{cache: c, ttl: ttl, opts: opts}
}

// Key returns the cache key of g: the SHA-256 of its text form.
func (s *Results) Key(g *grid.Grid) string {
	return Hash([]byte(g.String()))
}

// Solve returns the cached result for g, computing and storing it on a miss.
// Only propagation errors are returned; cache failures land in Entry.CacheErr.
func (s *Results) Solve(ctx context.Context, g *grid.Grid) (Entry, error) {
	key := s.Key(g)
	res, hit, loadErr := s.Load(ctx, key)
	if hit {
		return Entry{Key: key, Result: res, Cached: true}, nil
	}

	opts := append(slices.Clone(s.opts), escape.WithContext(ctx))
	res, err := escape.Compute(g, opts...)
	if err != nil {
		return Entry{}, err
	}
	storeErr := s.Store(ctx, key, res)
	if loadErr == nil {
		loadErr = storeErr
	}
	return Entry{Key: key, Result: res, CacheErr: loadErr}, nil
}

// Load returns the result stored under key. Malformed keys, missing entries
// and entries that no longer restore cleanly are all misses; the latter are
// deleted.
func (s *Results) Load(ctx context.Context, key string) (*escape.Result, bool, error) {
	if !validKey(key) {
		return nil, false, nil
	}
	var (
		data []byte
		hit  bool
	)
	err := retry(ctx, func() (err error) {
		data, hit, err = s.cache.Get(ctx, keyPrefix+key)
		return err
	})
	if err != nil || !hit {
		return nil, false, err
	}

	var snap escape.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, s.cache.Delete(ctx, keyPrefix+key)
	}
	res, err := escape.Restore(snap, s.opts...)
	if err != nil {
		return nil, false, s.cache.Delete(ctx, keyPrefix+key)
	}
	return res, true, nil
}

// Store saves res under key.
func (s *Results) Store(ctx context.Context, key string, res *escape.Result) error {
	data, err := json.Marshal(res.Snapshot())
	if err != nil {
		return err
	}
	return retry(ctx, func() error {
		return s.cache.Set(ctx, keyPrefix+key, data, s.ttl)
	})
}

// Close closes the underlying cache.
func (s *Results) Close() error { return s.cache.Close() }
