package payments

// ProcessPaymentRequest is the card form submitted at checkout. Card data is
// validated and classified but never stored beyond the last four digits.
type ProcessPaymentRequest struct {
	OrderID    string `json:"order_id" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
	CardExpiry string `json:"card_expiry" validate:"required"`
	CardCVV    string `json:"card_cvv" validate:"required"`
	CardHolder string `json:"card_holder" validate:"required"`
	UserID     string `json:"user_id,omitempty"`
}
