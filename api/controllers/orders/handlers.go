package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdantloop/verdantloop-backend/api/middleware"
	"github.com/verdantloop/verdantloop-backend/api/responses"
	"github.com/verdantloop/verdantloop-backend/api/validators"
	ordersvc "github.com/verdantloop/verdantloop-backend/internal/orders"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// OrderCreate places an order from the shopper's cart.
func OrderCreate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())
		if shopper.UserID == nil && payload.UserID != "" {
			shopper = types.NewShopper(payload.UserID, shopper.SessionID)
		}

		order, err := svc.CreateFromCart(r.Context(), shopper, ordersvc.CreateInput{
			Shipping:       payload.Shipping,
			ShippingMethod: enums.ShippingMethod(payload.ShippingMethod),
			PaymentMethod:  payload.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "order created", order)
	}
}

// OrderFetch returns one order with its items.
func OrderFetch(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")

		order, err := svc.Get(r.Context(), shopper, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order retrieved", order)
	}
}

// OrderList returns the paginated order history for a user.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())

		result, err := svc.ListForUser(r.Context(), shopper.User(), pagination.Params{Page: page, PerPage: perPage})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "orders retrieved", result)
	}
}

// OrderStatusFetch returns the tracking payload for one order.
func OrderStatusFetch(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		shopper := middleware.ShopperFromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")

		view, err := svc.Status(r.Context(), shopper, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order status retrieved", view)
	}
}

// OrderStatusUpdate moves an order to a new fulfillment status.
func OrderStatusUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID := chi.URLParam(r, "orderId")

		var payload UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateStatus(r.Context(), orderID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order status updated", view)
	}
}
