package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizQuestion is one step of the style quiz. Options is a JSON array of
// {value, label, image_url} entries rendered by the storefront.
type QuizQuestion struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	QuestionText string         `gorm:"not null" json:"question_text"`
	QuestionType string         `gorm:"not null" json:"question_type"`
	Options      datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	Position     int            `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (QuizQuestion) TableName() string { return "quiz_questions" }
