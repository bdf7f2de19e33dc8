package payments

import (
	"net/http"

	"github.com/verdantloop/verdantloop-backend/api/middleware"
	"github.com/verdantloop/verdantloop-backend/api/responses"
	"github.com/verdantloop/verdantloop-backend/api/validators"
	ordersvc "github.com/verdantloop/verdantloop-backend/internal/orders"
	paymentsvc "github.com/verdantloop/verdantloop-backend/internal/payments"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// PaymentProcess records a payment and then flips the order to paid. The two
// writes are separate statements rather than one transaction; if the second
// fails the payment row survives while the order still reads pending.
func PaymentProcess(svc paymentsvc.Service, orders ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || orders == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload ProcessPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())
		if shopper.UserID == nil && payload.UserID != "" {
			shopper = types.NewShopper(payload.UserID, shopper.SessionID)
		}

		result, err := svc.Process(r.Context(), shopper, paymentsvc.ProcessInput{
			OrderID:    payload.OrderID,
			CardNumber: payload.CardNumber,
			CardExpiry: payload.CardExpiry,
			CardCVV:    payload.CardCVV,
			CardHolder: payload.CardHolder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !result.Success {
			responses.WriteError(r.Context(), logg, w, failureError(result.Reason))
			return
		}

		if err := orders.MarkPaid(r.Context(), result.OrderID, result.PaymentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "payment processed", result)
	}
}

// failureError renders every expected payment rejection as a 400. The
// endpoint never distinguishes a missing or foreign order from any other
// processing failure.
func failureError(reason paymentsvc.FailureReason) error {
	switch reason {
	case paymentsvc.ReasonOrderNotFound:
		return pkgerrors.New(pkgerrors.CodeValidation, "order not found or access denied")
	case paymentsvc.ReasonAlreadyPaid:
		return pkgerrors.New(pkgerrors.CodeValidation, "order is already paid")
	case paymentsvc.ReasonIncompleteDetails:
		return pkgerrors.New(pkgerrors.CodeValidation, "incomplete payment details")
	default:
		return pkgerrors.New(pkgerrors.CodeInternal, "payment failed")
	}
}
