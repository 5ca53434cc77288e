package http

import (
	"context"

	"github.com/rentfront/gateway/internal/domain"
	"github.com/rentfront/gateway/internal/rentalapi"
)

// RentalAPI is what handlers need from the remote platform client.
type RentalAPI interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Products(ctx context.Context) ([]rentalapi.Product, error)
	PlaceOrder(ctx context.Context, order domain.Order) error
}

// APIFactory builds a RentalAPI bound to one session's token store.
// Tokens live per session, so the client has to be constructed per
// request rather than shared.
type APIFactory func(sessionID string) RentalAPI
