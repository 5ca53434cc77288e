package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfront/gateway/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func testSession(id string) *domain.CheckoutSession {
	sess := domain.NewCheckoutSession(id)
	sess.Items = []domain.CartItem{
		{ProductID: 1, Quantity: 2, DailyRate: 100,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	return sess
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1")))

	loaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", loaded.ID)
	assert.Equal(t, domain.StageCart, loaded.Stage)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(1), loaded.Items[0].ProductID)
}

func TestRedisStore_Get_NotFound(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Get_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(sessionKey("sess-1"), "{broken"))

	_, err := store.Get(context.Background(), "sess-1")
	require.ErrorContains(t, err, "unmarshal session failed")
}

func TestRedisStore_Save_SetsTTLWithJitter(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Save(context.Background(), testSession("sess-1")))

	ttl := mr.TTL(sessionKey("sess-1"))
	assert.True(t, ttl >= 2*time.Hour, "TTL should be at least base TTL")
	assert.True(t, ttl <= 2*time.Hour+10*time.Minute, "TTL should be base + max jitter")
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1")))
	assert.True(t, mr.Exists(sessionKey("sess-1")))

	require.NoError(t, store.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists(sessionKey("sess-1")))
}

func TestRedisStore_RoundTripPreservesStage(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	sess := testSession("sess-1")
	sess.Stage = domain.StagePayment
	sess.Delivery = domain.DeliveryInfo{Address: "12 Canal St", Method: "pickup"}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StagePayment, loaded.Stage)
	assert.Equal(t, "12 Canal St", loaded.Delivery.Address)
}

func TestSessionKey_Format(t *testing.T) {
	key := sessionKey("abc123")
	assert.Equal(t, "session:abc123", key)
}

func TestRedisStore_SerializedShape(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Save(context.Background(), testSession("sess-1")))

	stored, err := mr.Get(sessionKey("sess-1"))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stored), &raw))
	assert.Contains(t, raw, "stage")
	assert.Contains(t, raw, "items")
}
