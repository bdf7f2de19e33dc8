package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantloop/verdantloop-backend/pkg/enums"
)

// Order is a placed order. OrderID is the customer facing identifier
// (ORD + timestamp + random suffix) used on every external surface; the
// uuid primary key stays internal.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	OrderID   string    `gorm:"not null;uniqueIndex" json:"order_id"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	SessionID *string   `gorm:"index" json:"session_id,omitempty"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping_cost"`
	Tax          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax"`
	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	ShippingMethod enums.ShippingMethod `gorm:"not null;default:standard" json:"shipping_method"`
	PaymentMethod  string               `gorm:"not null" json:"payment_method"`
	PaymentStatus  enums.PaymentStatus  `gorm:"not null;default:pending" json:"payment_status"`
	OrderStatus    enums.OrderStatus    `gorm:"not null;default:processing" json:"order_status"`
	PaymentID      *string              `json:"payment_id,omitempty"`

	FirstName  string `gorm:"not null" json:"first_name"`
	LastName   string `gorm:"not null" json:"last_name"`
	Email      string `gorm:"not null" json:"email"`
	Phone      string `json:"phone"`
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }
