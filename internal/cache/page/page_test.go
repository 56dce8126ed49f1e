package page_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/cache/page"
	"goflare.io/kalori/internal/retrier"
	"goflare.io/kalori/pkg/serialization"
)

// fakeRedis is an in-memory RedisClient. When down is set every command fails.
type fakeRedis struct {
	mu    sync.Mutex
	data  map[string]string
	down  bool
	calls int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

var errDown = errors.New("connection refused")

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return redis.NewStringResult("", errDown)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return redis.NewStatusResult("", errDown)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return redis.NewIntResult(0, errDown)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(_ context.Context, _ uint64, match string, _ int64) *redis.ScanCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return redis.NewScanCmdResult(nil, 0, errDown)
	}
	// Patterns are always "<prefix>*"; Redis MATCH lets * span slashes.
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) Close() error { return nil }

func (f *fakeRedis) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func testRetry() retrier.Settings {
	s := retrier.DefaultSettings()
	s.MaxAttempts = 1
	s.BaseDelay = time.Millisecond
	return s
}

func newRemote(t *testing.T, client page.RedisClient, breaker gobreaker.Settings) *page.RemoteStore {
	t.Helper()
	remote, err := page.NewRemoteStore(client, "kalori:page:", serialization.Gob{}, breaker, testRetry(), zap.NewNop())
	require.NoError(t, err)
	return remote
}

func newLocal(t *testing.T) *page.LocalStore {
	t.Helper()
	local, err := page.NewLocalStore(1<<20, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	return local
}

func doc(body string) *page.Document {
	return &page.Document{Status: 200, ContentType: "text/html; charset=utf-8", Body: []byte(body)}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/search", page.Key("/search", nil))
	assert.Equal(t, "/search?page=2&q=elma", page.Key("/search", url.Values{"q": {"elma"}, "page": {"2"}}))
	assert.Equal(t,
		page.Key("/all-foods", url.Values{"b": {"1"}, "a": {"2"}}),
		page.Key("/all-foods", url.Values{"a": {"2"}, "b": {"1"}}))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)

	require.NoError(t, local.Set(ctx, "/domates", doc("<html>domates</html>"), time.Minute))

	got, ok, err := local.Get(ctx, "/domates")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<html>domates</html>", string(got.Body))

	require.NoError(t, local.Delete(ctx, "/domates"))
	_, ok, _ = local.Get(ctx, "/domates")
	assert.False(t, ok)
}

func TestRemoteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	remote := newRemote(t, client, gobreaker.Settings{Name: "test"})

	_, ok, err := remote.Get(ctx, "/elma")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is a miss, not an error")

	require.NoError(t, remote.Set(ctx, "/elma", doc("elma"), time.Minute))
	assert.Contains(t, client.data, "kalori:page:/elma")

	got, ok, err := remote.Get(ctx, "/elma")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 200, got.Status)
	assert.Equal(t, "elma", string(got.Body))
}

func TestRemoteStore_ClearOnlyTouchesPrefix(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.data["other:key"] = "keep"
	remote := newRemote(t, client, gobreaker.Settings{Name: "test"})

	require.NoError(t, remote.Set(ctx, "/a", doc("a"), time.Minute))
	require.NoError(t, remote.Set(ctx, "/b", doc("b"), time.Minute))
	require.NoError(t, remote.Set(ctx, "/kalori/domates", doc("domates"), time.Minute))
	require.NoError(t, remote.Clear(ctx))

	assert.Equal(t, map[string]string{"other:key": "keep"}, client.data)
}

func TestRemoteStore_BreakerOpens(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.setDown(true)
	remote := newRemote(t, client, gobreaker.Settings{
		Name:    "test",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	for i := 0; i < 2; i++ {
		_, _, err := remote.Get(ctx, "/x")
		require.Error(t, err)
	}
	callsBefore := client.calls

	_, _, err := remote.Get(ctx, "/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBefore, client.calls, "open breaker must not reach redis")
}

func TestCache_LocalHit(t *testing.T) {
	ctx := context.Background()
	c, err := page.New(newLocal(t), nil, time.Minute, zap.NewNop())
	require.NoError(t, err)

	_, ok := c.Get(ctx, "/")
	assert.False(t, ok)

	c.Set(ctx, "/", doc("home"))
	got, ok := c.Get(ctx, "/")
	require.True(t, ok)
	assert.Equal(t, "home", string(got.Body))

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCache_RemoteBackfillsLocal(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	remote := newRemote(t, client, gobreaker.Settings{Name: "test"})
	local := newLocal(t)

	stored := doc("ispanak")
	stored.StoredAt = time.Now()
	require.NoError(t, remote.Set(ctx, "/ispanak", stored, time.Minute))

	c, err := page.New(local, remote, time.Minute, zap.NewNop())
	require.NoError(t, err)

	got, ok := c.Get(ctx, "/ispanak")
	require.True(t, ok)
	assert.Equal(t, "ispanak", string(got.Body))

	_, ok, _ = local.Get(ctx, "/ispanak")
	assert.True(t, ok)
}

func TestCache_RemoteFailureIsMiss(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.setDown(true)
	c, err := page.New(newLocal(t), newRemote(t, client, gobreaker.Settings{Name: "test"}), time.Minute, zap.NewNop())
	require.NoError(t, err)

	_, ok := c.Get(ctx, "/ayran")
	assert.False(t, ok)

	c.Set(ctx, "/ayran", doc("ayran"))
	got, ok := c.Get(ctx, "/ayran")
	require.True(t, ok, "local tier still serves while redis is down")
	assert.Equal(t, "ayran", string(got.Body))
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c, err := page.New(newLocal(t), newRemote(t, client, gobreaker.Settings{Name: "test"}), time.Minute, zap.NewNop())
	require.NoError(t, err)

	c.Set(ctx, "/", doc("home"))
	require.NoError(t, c.Clear(ctx))

	_, ok := c.Get(ctx, "/")
	assert.False(t, ok)
	assert.Empty(t, client.data)
}

func TestNew_Validation(t *testing.T) {
	_, err := page.New(nil, nil, time.Minute, nil)
	assert.Error(t, err)
	_, err = page.New(newLocal(t), nil, 0, nil)
	assert.Error(t, err)
}
