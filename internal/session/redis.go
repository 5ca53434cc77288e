package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentfront/gateway/internal/domain"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 2 * time.Hour,
	}
}

type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var session domain.CheckoutSession
	if err2 := json.Unmarshal(data, &session); err2 != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err2)
	}
	return &session, nil
}

func (r *RedisStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(10)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, sessionKey(session.ID), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
