package authclient

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrUnauthenticated means no access token was present when a request
	// was attempted. Callers should redirect to login.
	ErrUnauthenticated = errors.New("no access token in store")

	// ErrNoToken means a refresh was needed but no refresh token was
	// stored, or the refresh itself failed and the pair was cleared.
	ErrNoToken = errors.New("no refresh token available")

	ErrTokensNotFound = errors.New("token pair not found")
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenStore holds the token pair for one user session. Implementations
// must be safe for concurrent use; the client reads and replaces tokens
// from whichever goroutine carries the request.
type TokenStore interface {
	Get(ctx context.Context) (TokenPair, error)
	Set(ctx context.Context, pair TokenPair) error
	SetAccess(ctx context.Context, access string) error
	Clear(ctx context.Context) error
}

type memoryStore struct {
	m    sync.RWMutex
	pair TokenPair
	set  bool
}

// NewMemoryStore returns an in-process TokenStore, used by tests and
// single-session CLI callers.
func NewMemoryStore() TokenStore {
	return &memoryStore{}
}

func (s *memoryStore) Get(context.Context) (TokenPair, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	if !s.set {
		return TokenPair{}, ErrTokensNotFound
	}
	return s.pair, nil
}

func (s *memoryStore) Set(_ context.Context, pair TokenPair) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

func (s *memoryStore) SetAccess(_ context.Context, access string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if !s.set {
		return ErrTokensNotFound
	}
	s.pair.Access = access
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.pair = TokenPair{}
	s.set = false
	return nil
}
