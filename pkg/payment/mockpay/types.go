package mockpay

import "time"

// Card represents the card details collected from the checkout form
type Card struct {
	Number      string `json:"number"`       // 16 digits, spaces allowed
	HolderName  string `json:"holder_name"`  // non-empty
	ExpiryMonth int    `json:"expiry_month"` // 1-12
	ExpiryYear  int    `json:"expiry_year"`  // four digits
	CVV         string `json:"cvv"`          // 3 digits
}

// ChargeRequest represents a charge submitted to the gateway
type ChargeRequest struct {
	OrderNumber string  `json:"order_number"`
	Amount      float64 `json:"amount"`
	Card        Card    `json:"card"`
}

// ChargeResponse represents the result of an approved charge
type ChargeResponse struct {
	TID        string    `json:"tid"`
	CardLast4  string    `json:"card_last4"`
	Amount     float64   `json:"amount"`
	ApprovedAt time.Time `json:"approved_at"`
}
