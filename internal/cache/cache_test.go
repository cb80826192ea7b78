package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", []byte("v1"), 0))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("v1"), data)

	require.NoError(t, c.Set(ctx, "k", []byte("v2"), time.Hour))
	data, _, _ = c.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"), "deleting twice is fine")
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	exercise(t, c)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))

	now = now.Add(2 * time.Minute)
	_, hit, _ := c.Get(ctx, "short")
	assert.False(t, hit)
	_, hit, _ = c.Get(ctx, "forever")
	assert.True(t, hit)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Copies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	in := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", in, 0))
	in[0] = 'X'

	out, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), out)
	out[0] = 'Y'
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestFileCache_ExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "old", []byte("x"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)
	_, hit, err := c.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoFileExists(t, c.path("old"))

	require.NoError(t, c.Set(ctx, "bad", []byte("x"), 0))
	require.NoError(t, os.WriteFile(c.path("bad"), []byte("{not json"), 0o644))
	_, hit, err = c.Get(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoFileExists(t, c.path("bad"))
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}

	n, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, hit, _ := c.Get(ctx, "a")
	assert.False(t, hit)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SPACEGRID_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPACEGRID_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), addr, 0, "spacegrid-test:")
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, "127.0.0.1:1", 0, "")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	assert.Equal(t, h, Hash([]byte("hello")))
	assert.NotEqual(t, h, Hash([]byte("world")))
	assert.Len(t, h, 64)

	assert.True(t, validKey(h))
	assert.False(t, validKey(h[:63]))
	assert.False(t, validKey("../"+h[3:]))
	assert.False(t, validKey(h[:63]+"G"))
}

func TestRetry(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()
	ctx := context.Background()

	calls := 0
	err := retry(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 3, calls)

	calls = 0
	plain := errors.New("plain")
	assert.Equal(t, plain, retry(ctx, func() error { calls++; return plain }))
	assert.Equal(t, 1, calls)

	calls = 0
	assert.NoError(t, retry(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	}))
	assert.Equal(t, 2, calls)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, retry(cancelled, func() error { return Retryable(ErrNetwork) }), context.Canceled)

	assert.Nil(t, Retryable(nil))
}
