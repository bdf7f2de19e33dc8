package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is an anonymous or signed-in shopping cart. A cart belongs to a user
// when UserID is set, otherwise it is keyed by the browser session.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	SessionID *string   `gorm:"index" json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

func (Cart) TableName() string { return "carts" }
