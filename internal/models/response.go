package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PriceSummary mirrors the booking form's price block: per-seat price, seat
// count and the computed total, with a display-ready formatted amount.
type PriceSummary struct {
	PricePerSeat   float64 `json:"pricePerSeat"`
	NumberOfSeats  int     `json:"numberOfSeats"`
	TotalAmount    float64 `json:"totalAmount"`
	FormattedTotal string  `json:"formattedTotal"`
}
