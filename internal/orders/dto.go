package orders

import (
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// CreateInput carries everything checkout needs beyond the cart itself.
type CreateInput struct {
	Shipping       types.ShippingAddress
	ShippingMethod enums.ShippingMethod
	PaymentMethod  string
}

// ListResult is one page of a user's order history.
type ListResult struct {
	Orders     []models.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// StatusView is the lightweight tracking payload.
type StatusView struct {
	OrderID       string              `json:"order_id"`
	OrderStatus   enums.OrderStatus   `json:"order_status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	UpdatedAt     string              `json:"updated_at"`
}
