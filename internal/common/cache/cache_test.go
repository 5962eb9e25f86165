package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *goredis.StatusCmd {
	f.data[key] = value.(string)
	f.ttl[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, ttl time.Duration) *goredis.BoolCmd {
	if _, ok := f.data[key]; !ok {
		return goredis.NewBoolResult(false, nil)
	}
	f.ttl[key] = ttl
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Close() error { return nil }

type snapshot struct {
	Page  int      `json:"page"`
	Items []string `json:"items"`
}

func TestCacheService_RoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	c := NewCacheService(rdb, "console:session")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "s1", snapshot{Page: 2, Items: []string{"a"}}, time.Hour))
	assert.Equal(t, `{"page":2,"items":["a"]}`, rdb.data["console:session:s1"])
	assert.Equal(t, time.Hour, rdb.ttl["console:session:s1"])

	var got snapshot
	require.NoError(t, c.Get(ctx, "s1", &got))
	assert.Equal(t, snapshot{Page: 2, Items: []string{"a"}}, got)

	require.NoError(t, c.Touch(ctx, "s1", 2*time.Hour))
	assert.Equal(t, 2*time.Hour, rdb.ttl["console:session:s1"])
}

func TestCacheService_TouchMissingKey(t *testing.T) {
	rdb := newFakeRedis()
	c := NewCacheService(rdb, "console:session")

	require.NoError(t, c.Touch(context.Background(), "gone", time.Hour))
	assert.NotContains(t, rdb.ttl, "console:session:gone")
}

func TestCacheService_Miss(t *testing.T) {
	c := NewCacheService(newFakeRedis(), "")

	var got snapshot
	err := c.Get(context.Background(), "missing", &got)
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestCacheService_CorruptValue(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["s1"] = "{not json"
	c := NewCacheService(rdb, "")

	var got snapshot
	err := c.Get(context.Background(), "s1", &got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMiss))
}
