package checkout

import (
	"errors"
	"fmt"
)

// ErrValidationBlocked is the common ancestor of every guard refusal.
// Guard refusals are expected user-input states, not exceptional
// conditions: they block the transition and change nothing.
var ErrValidationBlocked = errors.New("checkout validation blocked")

var (
	ErrEmptyCart          = fmt.Errorf("%w: cart is empty, nothing to check out", ErrValidationBlocked)
	ErrMissingAddress     = fmt.Errorf("%w: delivery address is required", ErrValidationBlocked)
	ErrMissingMethod      = fmt.Errorf("%w: delivery method is required", ErrValidationBlocked)
	ErrMissingPayment     = fmt.Errorf("%w: payment method is required", ErrValidationBlocked)
	ErrIncompleteCard     = fmt.Errorf("%w: all card fields are required", ErrValidationBlocked)
	ErrQuantityExceedsMax = fmt.Errorf("%w: quantity exceeds available stock", ErrValidationBlocked)
)

var (
	ErrIllegalTransition = errors.New("illegal checkout stage transition")
	ErrWrongStage        = errors.New("operation not allowed in current stage")
	ErrItemNotFound      = errors.New("item not found in cart")

	// ErrOrderFailed wraps a failure of the order-placement action. The
	// shopper stays on the payment stage with entered data intact.
	ErrOrderFailed = errors.New("order placement failed")
)
