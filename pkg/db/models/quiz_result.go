package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuizResult struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *string        `gorm:"index" json:"user_id,omitempty"`
	Answers   datatypes.JSON `gorm:"type:jsonb;not null" json:"answers"`
	CreatedAt time.Time      `json:"created_at"`
}

func (QuizResult) TableName() string { return "quiz_results" }
