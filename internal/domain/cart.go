package domain

import "time"

type CartItem struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	MaxQuantity int       `json:"max_quantity"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	DailyRate   float64   `json:"daily_rate"`
	ImageURL    string    `json:"image_url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

type DeliveryInfo struct {
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Method  string `json:"method"`
}

type PaymentInfo struct {
	Method     string `json:"method"`
	CardHolder string `json:"card_holder,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
}

// CardMethods lists payment methods that require full card details.
var CardMethods = map[string]bool{
	"credit-card": true,
	"debit-card":  true,
}

func (p PaymentInfo) RequiresCard() bool {
	return CardMethods[p.Method]
}
