package domain

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	DailyRate   float64 `json:"daily_rate"`
	RentalDays  int     `json:"rental_days"`
	LineTotal   float64 `json:"line_total"`
}

type Order struct {
	SessionID string       `json:"session_id"`
	Items     []OrderItem  `json:"items"`
	Delivery  DeliveryInfo `json:"delivery"`
	Payment   PaymentInfo  `json:"payment"`
	Subtotal  float64      `json:"subtotal"`
	Tax       float64      `json:"tax"`
	Total     float64      `json:"total"`
	Currency  string       `json:"currency"`
}
