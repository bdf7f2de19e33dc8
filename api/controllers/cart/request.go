package cart

import "github.com/google/uuid"

// AddItemRequest is the add-to-cart payload. Quantity defaults to one when
// omitted. UserID is an optional body fallback for clients that do not send
// the query parameter.
type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"omitempty,min=1"`
	UserID    string     `json:"user_id,omitempty"`
}

// UpdateItemRequest sets the quantity of an existing line. Zero removes it.
type UpdateItemRequest struct {
	Quantity int    `json:"quantity" validate:"min=0"`
	UserID   string `json:"user_id,omitempty"`
}
