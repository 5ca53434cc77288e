package session

import (
	"context"
	"errors"

	"github.com/rentfront/gateway/internal/domain"
)

// Store keeps checkout sessions between requests, keyed by session ID.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	Save(ctx context.Context, session *domain.CheckoutSession) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("checkout session not found")
