package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdantloop/verdantloop-backend/api/middleware"
	"github.com/verdantloop/verdantloop-backend/api/responses"
	"github.com/verdantloop/verdantloop-backend/api/validators"
	cartsvc "github.com/verdantloop/verdantloop-backend/internal/cart"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// CartFetch returns the shopper's cart with items and totals, creating an
// empty cart on first contact.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())

		summary, err := svc.Summary(r.Context(), shopper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "cart retrieved", summary)
	}
}

// CartAddItem appends a product line to the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := shopperWithFallback(r, payload.UserID)

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}

		summary, err := svc.AddItem(r.Context(), shopper, cartsvc.AddItemInput{
			ProductID: payload.ProductID,
			VariantID: payload.VariantID,
			Quantity:  quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "item added to cart", summary)
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		itemID, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := shopperWithFallback(r, payload.UserID)

		summary, err := svc.UpdateItem(r.Context(), shopper, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "cart item updated", summary)
	}
}

// CartRemoveItem deletes one line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		itemID, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())

		summary, err := svc.RemoveItem(r.Context(), shopper, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "cart item removed", summary)
	}
}

// CartClear wipes every line from the shopper's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())

		if err := svc.Clear(r.Context(), shopper); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "cart cleared", nil)
	}
}

func itemIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "itemId")
	itemID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart item id")
	}
	return itemID, nil
}

// shopperWithFallback lets a body-supplied user id stand in when the query
// parameter was not sent. The query parameter wins when both are present.
func shopperWithFallback(r *http.Request, bodyUserID string) types.Shopper {
	shopper := middleware.ShopperFromContext(r.Context())
	if shopper.UserID == nil && bodyUserID != "" {
		return types.NewShopper(bodyUserID, shopper.SessionID)
	}
	return shopper
}
