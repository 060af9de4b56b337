package models

// Payment is a payment attempt attached to a booking.
type Payment struct {
	ID       int    `json:"id"`
	UID      string `json:"uid"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Success  bool   `json:"success"`
	Refunded bool   `json:"refunded"`
	Paid     bool   `json:"paid"`
}

