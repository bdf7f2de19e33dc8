package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a named option of a product, e.g. name "Size" value "M".
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductVariant) TableName() string { return "product_variants" }
