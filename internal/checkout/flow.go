package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rentfront/gateway/internal/domain"
)

// PlaceOrderFunc submits the finished order to the rental platform. The
// flow only cares about success or failure; persistence is the caller's
// problem.
type PlaceOrderFunc func(ctx context.Context, order domain.Order) error

// Flow drives one checkout session through Cart -> Delivery -> Payment
// -> Complete. Transitions own their guard conditions, so button
// handlers stay free of validation logic. The flow never talks to the
// network itself except through the injected PlaceOrderFunc.
type Flow struct {
	session    *domain.CheckoutSession
	placeOrder PlaceOrderFunc
}

func NewFlow(session *domain.CheckoutSession, placeOrder PlaceOrderFunc) *Flow {
	if session.Stage == "" {
		session.Stage = domain.StageCart
	}
	return &Flow{
		session:    session,
		placeOrder: placeOrder,
	}
}

func (f *Flow) Session() *domain.CheckoutSession {
	return f.session
}

func (f *Flow) Stage() domain.Stage {
	return f.session.Stage
}

// Summary recomputes totals from the current item list. Never cached.
func (f *Flow) Summary() Summary {
	return Totals(f.session.Items)
}

// AddItem puts an item in the cart, merging quantities when the product
// is already present. Item edits are cart-stage operations only.
func (f *Flow) AddItem(item domain.CartItem) error {
	if f.session.Stage != domain.StageCart {
		return ErrWrongStage
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.EndDate.Before(item.StartDate) {
		return fmt.Errorf("%w: rental end date precedes start date", ErrValidationBlocked)
	}

	for i := range f.session.Items {
		if f.session.Items[i].ProductID == item.ProductID {
			merged := f.session.Items[i].Quantity + item.Quantity
			if max := f.session.Items[i].MaxQuantity; max > 0 && merged > max {
				return ErrQuantityExceedsMax
			}
			f.session.Items[i].Quantity = merged
			f.touch()
			return nil
		}
	}

	item.AddedAt = time.Now()
	f.session.Items = append(f.session.Items, item)
	f.touch()
	return nil
}

// UpdateQuantity sets an item's quantity. Dropping to zero removes the
// item entirely, a zero-quantity line never survives. Quantity can not
// exceed the item's recorded availability ceiling.
func (f *Flow) UpdateQuantity(productID int64, quantity int) error {
	if f.session.Stage != domain.StageCart {
		return ErrWrongStage
	}
	if quantity <= 0 {
		return f.RemoveItem(productID)
	}

	for i := range f.session.Items {
		if f.session.Items[i].ProductID == productID {
			if max := f.session.Items[i].MaxQuantity; max > 0 && quantity > max {
				return ErrQuantityExceedsMax
			}
			f.session.Items[i].Quantity = quantity
			f.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *Flow) RemoveItem(productID int64) error {
	if f.session.Stage != domain.StageCart {
		return ErrWrongStage
	}
	for i, item := range f.session.Items {
		if item.ProductID == productID {
			f.session.Items = append(f.session.Items[:i], f.session.Items[i+1:]...)
			f.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *Flow) SetDelivery(info domain.DeliveryInfo) error {
	if f.session.Stage != domain.StageDelivery {
		return ErrWrongStage
	}
	f.session.Delivery = info
	f.touch()
	return nil
}

func (f *Flow) SetPayment(info domain.PaymentInfo) error {
	if f.session.Stage != domain.StagePayment {
		return ErrWrongStage
	}
	f.session.Payment = info
	f.touch()
	return nil
}

// Continue advances one stage forward after its guard passes. A failed
// guard refuses the transition and leaves the session untouched. The
// payment stage advances through PayNow, not Continue.
func (f *Flow) Continue() error {
	switch f.session.Stage {
	case domain.StageCart:
		if len(f.session.Items) == 0 {
			return ErrEmptyCart
		}
		return f.transition(domain.StageDelivery)

	case domain.StageDelivery:
		if strings.TrimSpace(f.session.Delivery.Address) == "" {
			return ErrMissingAddress
		}
		if strings.TrimSpace(f.session.Delivery.Method) == "" {
			return ErrMissingMethod
		}
		return f.transition(domain.StagePayment)

	default:
		return ErrIllegalTransition
	}
}

// Back steps one stage backward, preserving everything entered so far.
func (f *Flow) Back() error {
	switch f.session.Stage {
	case domain.StageDelivery:
		return f.transition(domain.StageCart)
	case domain.StagePayment:
		return f.transition(domain.StageDelivery)
	default:
		return ErrIllegalTransition
	}
}

// PayNow validates the payment details, submits the order and, on
// success only, moves to Complete and clears the cart. On failure the
// shopper stays on the payment stage with entered data intact.
func (f *Flow) PayNow(ctx context.Context) error {
	if f.session.Stage != domain.StagePayment {
		return ErrWrongStage
	}
	if err := validatePayment(f.session.Payment); err != nil {
		return err
	}

	order := f.BuildOrder()
	if err := f.placeOrder(ctx, order); err != nil {
		return fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	if err := f.transition(domain.StageComplete); err != nil {
		return err
	}
	f.session.Items = nil
	return nil
}

// BuildOrder snapshots the session into an order payload, with line
// totals derived the same way every stage summary derives them.
func (f *Flow) BuildOrder() domain.Order {
	summary := Totals(f.session.Items)

	items := make([]domain.OrderItem, len(f.session.Items))
	for i, item := range f.session.Items {
		items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			StartDate:   item.StartDate.Format("2006-01-02"),
			EndDate:     item.EndDate.Format("2006-01-02"),
			DailyRate:   item.DailyRate,
			RentalDays:  summary.Lines[i].RentalDays,
			LineTotal:   summary.Lines[i].Total,
		}
	}

	return domain.Order{
		SessionID: f.session.ID,
		Items:     items,
		Delivery:  f.session.Delivery,
		Payment:   f.session.Payment,
		Subtotal:  summary.Subtotal,
		Tax:       summary.Tax,
		Total:     summary.Total,
		Currency:  "USD",
	}
}

func (f *Flow) transition(next domain.Stage) error {
	if !domain.CanTransitionTo(f.session.Stage, next) {
		return ErrIllegalTransition
	}
	f.session.Stage = next
	f.touch()
	return nil
}

func (f *Flow) touch() {
	f.session.UpdatedAt = time.Now()
}

func validatePayment(p domain.PaymentInfo) error {
	if strings.TrimSpace(p.Method) == "" {
		return ErrMissingPayment
	}
	if !p.RequiresCard() {
		return nil
	}
	if strings.TrimSpace(p.CardHolder) == "" ||
		strings.TrimSpace(p.CardNumber) == "" ||
		strings.TrimSpace(p.CardExpiry) == "" ||
		strings.TrimSpace(p.CardCVV) == "" {
		return ErrIncompleteCard
	}
	return nil
}
