package checkout

import (
	"math"
	"time"

	"github.com/rentfront/gateway/internal/domain"
)

// TaxRate is applied to the subtotal. Delivery is free in the current
// pricing model, the field exists so summaries keep a stable shape.
const TaxRate = 0.10

type LineTotal struct {
	ProductID  int64   `json:"product_id"`
	RentalDays int     `json:"rental_days"`
	Total      float64 `json:"total"`
}

type Summary struct {
	Lines    []LineTotal `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
	Delivery float64     `json:"delivery"`
	Total    float64     `json:"total"`
}

// RentalDays counts days between start and end inclusively, so a
// same-day rental is one day. Clock time and zone are ignored.
func RentalDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Totals derives every monetary figure from the item list. It is the
// only place these numbers are computed; every stage summary goes
// through it so the cart, delivery and payment views can never disagree.
func Totals(items []domain.CartItem) Summary {
	summary := Summary{
		Lines: make([]LineTotal, 0, len(items)),
	}

	for _, item := range items {
		days := RentalDays(item.StartDate, item.EndDate)
		lineTotal := roundCents(item.DailyRate * float64(item.Quantity) * float64(days))

		summary.Lines = append(summary.Lines, LineTotal{
			ProductID:  item.ProductID,
			RentalDays: days,
			Total:      lineTotal,
		})
		summary.Subtotal = roundCents(summary.Subtotal + lineTotal)
	}

	summary.Tax = roundCents(summary.Subtotal * TaxRate)
	summary.Total = roundCents(summary.Subtotal + summary.Delivery + summary.Tax)
	return summary
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
