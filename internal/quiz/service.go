package quiz

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

const recommendationLimit = 12

// Option is one selectable answer of a quiz question.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	ImageURL string `json:"image_url,omitempty"`
}

// QuestionView is a quiz question with its options decoded for the client.
type QuestionView struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	QuestionType string    `json:"question_type"`
	Options      []Option  `json:"options"`
	Position     int       `json:"position"`
}

// SubmitResult is the stored quiz outcome plus matching products.
type SubmitResult struct {
	ResultID        uuid.UUID        `json:"result_id"`
	Styles          []string         `json:"styles"`
	Recommendations []models.Product `json:"recommendations"`
}

type recommender interface {
	Recommendations(ctx context.Context, styles []string, limit int) ([]models.Product, error)
}

type Service interface {
	Questions(ctx context.Context) ([]QuestionView, error)
	Submit(ctx context.Context, shopper types.Shopper, answers map[string]any) (*SubmitResult, error)
}

type service struct {
	repo    Repository
	catalog recommender
	logg    *logger.Logger
}

func NewService(repo Repository, catalog recommender, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quiz repository is required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog recommender is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, catalog: catalog, logg: logg}, nil
}

func (s *service) Questions(ctx context.Context) ([]QuestionView, error) {
	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing quiz questions")
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		var options []Option
		if len(q.Options) > 0 {
			if err := json.Unmarshal(q.Options, &options); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding quiz options")
			}
		}
		if options == nil {
			options = []Option{}
		}
		views = append(views, QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      options,
			Position:     q.Position,
		})
	}
	return views, nil
}

// Submit stores the raw answers and returns products matching the style
// values the shopper picked.
func (s *service) Submit(ctx context.Context, shopper types.Shopper, answers map[string]any) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "answers are required")
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encoding answers")
	}

	result := &models.QuizResult{
		UserID:  shopper.UserID,
		Answers: raw,
	}
	if err := s.repo.InsertResult(ctx, result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing quiz result")
	}

	styles := extractStyles(answers)
	recommendations, err := s.catalog.Recommendations(ctx, styles, recommendationLimit)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "quiz_result_id", result.ID.String()), "quiz submitted")

	return &SubmitResult{
		ResultID:        result.ID,
		Styles:          styles,
		Recommendations: recommendations,
	}, nil
}

// extractStyles flattens answer values into a deduplicated style list.
// Answers are keyed by question id; values are either a string or a list of
// strings for multi-select questions.
func extractStyles(answers map[string]any) []string {
	seen := map[string]bool{}
	styles := []string{}

	add := func(value string) {
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		styles = append(styles, value)
	}

	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		switch v := answers[key].(type) {
		case string:
			add(v)
		case []any:
			for _, entry := range v {
				if str, ok := entry.(string); ok {
					add(str)
				}
			}
		case []string:
			for _, str := range v {
				add(str)
			}
		}
	}
	return styles
}
