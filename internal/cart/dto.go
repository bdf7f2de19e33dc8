package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDetail is a cart line joined with its product, variant and primary image.
type ItemDetail struct {
	CartItemID   uuid.UUID       `gorm:"column:cart_item_id" json:"item_id"`
	ProductID    uuid.UUID       `gorm:"column:product_id" json:"product_id"`
	VariantID    *uuid.UUID      `gorm:"column:variant_id" json:"variant_id,omitempty"`
	Quantity     int             `gorm:"column:quantity" json:"quantity"`
	ProductName  string          `gorm:"column:product_name" json:"name"`
	ProductSlug  string          `gorm:"column:product_slug" json:"slug"`
	Price        decimal.Decimal `gorm:"column:price" json:"price"`
	VariantName  *string         `gorm:"column:variant_name" json:"variant_name,omitempty"`
	VariantValue *string         `gorm:"column:variant_value" json:"variant_value,omitempty"`
	ImageURL     *string         `gorm:"column:image_url" json:"image_url,omitempty"`
}

// Totals is the cart price breakdown. Amounts are fixed two decimal strings
// so clients never see float artifacts.
type Totals struct {
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Shipping  string `json:"shipping"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// Summary is the full cart payload returned by the read endpoint.
type Summary struct {
	CartID uuid.UUID    `json:"cart_id"`
	Items  []ItemDetail `json:"items"`
	Totals Totals       `json:"totals"`
}

type AddItemInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}
