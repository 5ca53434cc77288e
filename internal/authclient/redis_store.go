package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists one session's token pair in Redis, which is the
// server-side stand-in for the browser's local storage. The pair expires
// with the session TTL so abandoned sessions do not accumulate tokens.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context) (TokenPair, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return TokenPair{}, ErrTokensNotFound
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("redis get failed: %w", err)
	}

	var pair TokenPair
	if err2 := json.Unmarshal(data, &pair); err2 != nil {
		return TokenPair{}, fmt.Errorf("unmarshal token pair failed: %w", err2)
	}
	return pair, nil
}

func (r *RedisStore) Set(ctx context.Context, pair TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("marshal token pair failed: %w", err)
	}
	if err := r.client.Set(ctx, r.key(), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) SetAccess(ctx context.Context, access string) error {
	pair, err := r.Get(ctx)
	if err != nil {
		return err
	}
	pair.Access = access
	return r.Set(ctx, pair)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) key() string {
	return fmt.Sprintf("tokens:%s", r.sessionID)
}
