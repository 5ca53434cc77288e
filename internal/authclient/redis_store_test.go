package authclient

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "sess-1", time.Hour), mr
}

func TestRedisStore_SetAndGet(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	err := store.Set(ctx, TokenPair{Access: "a1", Refresh: "r1"})
	require.NoError(t, err)

	pair, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", pair.Access)
	assert.Equal(t, "r1", pair.Refresh)
}

func TestRedisStore_Get_NotFound(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, ErrTokensNotFound)
}

func TestRedisStore_Get_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("tokens:sess-1", "{not json"))

	_, err := store.Get(context.Background())
	require.ErrorContains(t, err, "unmarshal token pair failed")
}

func TestRedisStore_SetAccess_ReplacesAccessOnly(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, TokenPair{Access: "old", Refresh: "r1"}))
	require.NoError(t, store.SetAccess(ctx, "new"))

	stored, err := mr.Get("tokens:sess-1")
	require.NoError(t, err)

	var pair TokenPair
	require.NoError(t, json.Unmarshal([]byte(stored), &pair))
	assert.Equal(t, "new", pair.Access)
	assert.Equal(t, "r1", pair.Refresh)
}

func TestRedisStore_SetAccess_NoPairStored(t *testing.T) {
	store, _ := setupTestRedis(t)

	err := store.SetAccess(context.Background(), "new")
	assert.ErrorIs(t, err, ErrTokensNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, TokenPair{Access: "a1", Refresh: "r1"}))
	assert.True(t, mr.Exists("tokens:sess-1"))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("tokens:sess-1"))
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Set(context.Background(), TokenPair{Access: "a1", Refresh: "r1"}))

	ttl := mr.TTL("tokens:sess-1")
	assert.True(t, ttl > 0 && ttl <= time.Hour, "token pair must expire with the session")
}
