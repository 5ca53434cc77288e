package domain

import "time"

type Stage string

const (
	StageCart     Stage = "CART"
	StageDelivery Stage = "DELIVERY"
	StagePayment  Stage = "PAYMENT"
	StageComplete Stage = "COMPLETE"
)

func (s Stage) IsTerminal() bool {
	return s == StageComplete
}

// String representation (for logging)
func (s Stage) String() string {
	return string(s)
}

// CanTransitionTo reports whether the checkout may move from s to next.
// The flow is strictly linear with one backward step per stage.
func CanTransitionTo(s, next Stage) bool {
	switch s {
	case StageCart:
		return next == StageDelivery
	case StageDelivery:
		return next == StagePayment || next == StageCart
	case StagePayment:
		return next == StageComplete || next == StageDelivery
	default:
		return false
	}
}

type CheckoutSession struct {
	ID        string       `json:"id"`
	Stage     Stage        `json:"stage"`
	Items     []CartItem   `json:"items"`
	Delivery  DeliveryInfo `json:"delivery"`
	Payment   PaymentInfo  `json:"payment"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewCheckoutSession(id string) *CheckoutSession {
	now := time.Now()
	return &CheckoutSession{
		ID:        id,
		Stage:     StageCart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
