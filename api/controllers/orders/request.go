package orders

import "github.com/verdantloop/verdantloop-backend/pkg/types"

// CreateOrderRequest is the checkout payload. UserID is an optional body
// fallback mirroring the cart endpoints.
type CreateOrderRequest struct {
	Shipping       types.ShippingAddress `json:"shipping" validate:"required"`
	ShippingMethod string                `json:"shipping_method,omitempty"`
	PaymentMethod  string                `json:"payment_method" validate:"required"`
	UserID         string                `json:"user_id,omitempty"`
}

// UpdateStatusRequest moves an order to a new fulfillment status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
