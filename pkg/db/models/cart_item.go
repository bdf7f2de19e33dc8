package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. VariantID is nil for products
// without size or color options.
type CartItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CartID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null" json:"product_id"`
	VariantID *uuid.UUID `gorm:"type:uuid" json:"variant_id,omitempty"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }
