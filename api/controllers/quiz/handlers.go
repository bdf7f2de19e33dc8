package quiz

import (
	"net/http"

	"github.com/verdantloop/verdantloop-backend/api/middleware"
	"github.com/verdantloop/verdantloop-backend/api/responses"
	"github.com/verdantloop/verdantloop-backend/api/validators"
	quizsvc "github.com/verdantloop/verdantloop-backend/internal/quiz"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// SubmitQuizRequest carries the shopper's answers keyed by question id.
type SubmitQuizRequest struct {
	Answers map[string]any `json:"answers" validate:"required"`
	UserID  string         `json:"user_id,omitempty"`
}

// QuizQuestions returns the style quiz in display order.
func QuizQuestions(svc quizsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quiz service unavailable"))
			return
		}

		questions, err := svc.Questions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "quiz questions retrieved", questions)
	}
}

// QuizSubmit stores the answers and responds with style recommendations.
func QuizSubmit(svc quizsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quiz service unavailable"))
			return
		}

		var payload SubmitQuizRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())
		if shopper.UserID == nil && payload.UserID != "" {
			shopper = types.NewShopper(payload.UserID, shopper.SessionID)
		}

		result, err := svc.Submit(r.Context(), shopper, payload.Answers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "quiz submitted", result)
	}
}
