package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a catalog taxonomy node. Top level categories have a nil parent.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ParentID    *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"not null;uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Subcategories []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
}

func (Category) TableName() string { return "categories" }
