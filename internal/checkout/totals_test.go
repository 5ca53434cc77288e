package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rentfront/gateway/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays_Inclusive(t *testing.T) {
	assert.Equal(t, 3, RentalDays(date(2024, 1, 1), date(2024, 1, 3)))
}

func TestRentalDays_SameDayIsOneDay(t *testing.T) {
	assert.Equal(t, 1, RentalDays(date(2024, 5, 10), date(2024, 5, 10)))
}

func TestRentalDays_IgnoresClockTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, RentalDays(start, end))
}

func TestRentalDays_EndBeforeStart(t *testing.T) {
	assert.Equal(t, 0, RentalDays(date(2024, 1, 3), date(2024, 1, 1)))
}

func TestTotals_SingleItem(t *testing.T) {
	// dailyRate=100, quantity=2, three rental days
	items := []domain.CartItem{
		{
			ProductID: 1,
			Quantity:  2,
			StartDate: date(2024, 1, 1),
			EndDate:   date(2024, 1, 3),
			DailyRate: 100,
		},
	}

	summary := Totals(items)
	assert.Equal(t, 600.0, summary.Subtotal)
	assert.Equal(t, 60.0, summary.Tax)
	assert.Equal(t, 0.0, summary.Delivery)
	assert.Equal(t, 660.0, summary.Total)

	assert.Len(t, summary.Lines, 1)
	assert.Equal(t, 3, summary.Lines[0].RentalDays)
	assert.Equal(t, 600.0, summary.Lines[0].Total)
}

func TestTotals_MultipleItems(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 1, StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1), DailyRate: 50},
		{ProductID: 2, Quantity: 3, StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 2), DailyRate: 20},
	}

	summary := Totals(items)
	// 50*1*1 + 20*3*2 = 170
	assert.Equal(t, 170.0, summary.Subtotal)
	assert.Equal(t, 17.0, summary.Tax)
	assert.Equal(t, 187.0, summary.Total)
}

func TestTotals_EmptyCart(t *testing.T) {
	summary := Totals(nil)
	assert.Equal(t, 0.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Tax)
	assert.Equal(t, 0.0, summary.Total)
	assert.Empty(t, summary.Lines)
}

func TestTotals_TaxRoundedToCents(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1), DailyRate: 19.99},
	}

	summary := Totals(items)
	assert.Equal(t, 19.99, summary.Subtotal)
	assert.Equal(t, 2.0, summary.Tax)
	assert.Equal(t, 21.99, summary.Total)
}
