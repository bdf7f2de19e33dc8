package quiz

import (
	"context"

	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
)

type Repository interface {
	ListQuestions(ctx context.Context) ([]models.QuizQuestion, error)
	InsertResult(ctx context.Context, result *models.QuizResult) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{conn: tx}
}

func (r *repository) ListQuestions(ctx context.Context) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := r.conn.WithContext(ctx).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) InsertResult(ctx context.Context, result *models.QuizResult) error {
	return r.conn.WithContext(ctx).Create(result).Error
}
