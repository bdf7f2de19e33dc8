package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantloop/verdantloop-backend/pkg/enums"
)

// Payment is a record of a captured payment. Only successful captures are
// persisted; declined attempts never produce a row.
type Payment struct {
	ID            uuid.UUID                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	PaymentID     string                    `gorm:"not null;uniqueIndex" json:"payment_id"`
	OrderID       string                    `gorm:"not null;index" json:"order_id"`
	Amount        decimal.Decimal           `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod string                    `gorm:"not null" json:"payment_method"`
	CardLastFour  string                    `gorm:"not null" json:"card_last_four"`
	CardType      enums.CardNetwork         `gorm:"not null" json:"card_type"`
	Status        enums.PaymentRecordStatus `gorm:"not null;default:completed" json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
