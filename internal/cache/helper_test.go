package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint
	Name string
}

// withTestRedis points the package client at a miniredis instance for the
// duration of the test.
func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })
	return mr
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the fetched value", func(t *testing.T) {
		withTestRedis(t)
		calls := 0
		fetchInto := func(dest *cachedThing) func() error {
			return func() error {
				calls++
				*dest = cachedThing{ID: 7, Name: "fetched"}
				return nil
			}
		}

		var first cachedThing
		require.NoError(t, Aside(ctx, "thing:7", &first, time.Minute, fetchInto(&first)))
		assert.Equal(t, 1, calls)

		var second cachedThing
		require.NoError(t, Aside(ctx, "thing:7", &second, time.Minute, fetchInto(&second)))
		assert.Equal(t, 1, calls, "second read should be served from cache")
		assert.Equal(t, first, second)
	})

	t.Run("nil client falls through to fetch", func(t *testing.T) {
		client = nil
		var got cachedThing
		require.NoError(t, Aside(ctx, "thing:1", &got, time.Minute, func() error {
			got = cachedThing{ID: 1, Name: "db"}
			return nil
		}))
		assert.Equal(t, "db", got.Name)
	})

	t.Run("redis failure mid-run degrades to fetch", func(t *testing.T) {
		mr := withTestRedis(t)
		// Kill the server after the client is wired so every command errors.
		mr.Close()

		var got cachedThing
		require.NoError(t, Aside(ctx, "thing:2", &got, time.Minute, func() error {
			got = cachedThing{ID: 2, Name: "db"}
			return nil
		}))
		assert.Equal(t, "db", got.Name)
	})

	t.Run("corrupt cache entry is treated as a miss", func(t *testing.T) {
		mr := withTestRedis(t)
		require.NoError(t, mr.Set("thing:3", "{not json"))

		var got cachedThing
		require.NoError(t, Aside(ctx, "thing:3", &got, time.Minute, func() error {
			got = cachedThing{ID: 3, Name: "db"}
			return nil
		}))
		assert.Equal(t, "db", got.Name)
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		withTestRedis(t)
		var got cachedThing
		err := Aside(ctx, "thing:4", &got, time.Minute, func() error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSetJSONThenGetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	in := cachedThing{ID: 9, Name: "stored"}
	require.NoError(t, SetJSON(ctx, "thing:9", in, time.Minute))

	var out cachedThing
	found, err := GetJSON(ctx, "thing:9", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}
