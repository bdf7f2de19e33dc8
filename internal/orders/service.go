package orders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/internal/cart"
	"github.com/verdantloop/verdantloop-backend/pkg/db"
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns order placement and tracking.
type Service interface {
	CreateFromCart(ctx context.Context, shopper types.Shopper, in CreateInput) (*models.Order, error)
	Get(ctx context.Context, shopper types.Shopper, orderID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error)
	Status(ctx context.Context, shopper types.Shopper, orderID string) (*StatusView, error)
	UpdateStatus(ctx context.Context, orderID string, status string) (*StatusView, error)
	MarkPaid(ctx context.Context, orderID string, paymentID string) error
}

type service struct {
	repo  Repository
	carts cart.Repository
	db    txRunner
	logg  *logger.Logger
}

func NewService(repo Repository, carts cart.Repository, runner txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository is required")
	}
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repository is required")
	}
	if runner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, carts: carts, db: runner, logg: logg}, nil
}

// CreateFromCart turns the shopper's cart into an order. The order insert,
// the line item snapshots and the cart wipe all commit or roll back together.
func (s *service) CreateFromCart(ctx context.Context, shopper types.Shopper, in CreateInput) (*models.Order, error) {
	activeCart, err := s.carts.FindNewestForShopper(ctx, shopper)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart")
	}

	items, err := s.carts.ItemDetails(ctx, activeCart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart items")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if !in.ShippingMethod.IsValid() {
		in.ShippingMethod = enums.ShippingMethodStandard
	}

	subtotal, tax, shipping, total := cart.PriceBreakdown(items)
	orderID := generateOrderID()

	order := &models.Order{
		OrderID:        orderID,
		UserID:         shopper.UserID,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Tax:            tax,
		Total:          total,
		ShippingMethod: in.ShippingMethod,
		PaymentMethod:  in.PaymentMethod,
		PaymentStatus:  enums.PaymentStatusPending,
		OrderStatus:    enums.OrderStatusProcessing,
		FirstName:      in.Shipping.FirstName,
		LastName:       in.Shipping.LastName,
		Email:          in.Shipping.Email,
		Phone:          in.Shipping.Phone,
		Address:        in.Shipping.Address,
		City:           in.Shipping.City,
		PostalCode:     in.Shipping.PostalCode,
		Country:        in.Shipping.Country,
	}
	if shopper.SessionID != "" {
		sessionID := shopper.SessionID
		order.SessionID = &sessionID
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txCarts := s.carts.WithTx(tx)

		if err := txOrders.Insert(ctx, order); err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		for _, line := range items {
			item := &models.OrderItem{
				OrderID:   orderID,
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				Price:     line.Price,
				Name:      line.ProductName,
			}
			if line.ImageURL != nil {
				item.ImageURL = *line.ImageURL
			}
			if err := txOrders.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("inserting order item for product %s: %w", line.ProductID, err)
			}
		}

		if err := txCarts.DeleteItemsByCart(ctx, activeCart.ID); err != nil {
			return fmt.Errorf("clearing cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "placing order")
	}

	ctx = s.logg.WithOrderID(ctx, orderID)
	s.logg.Info(ctx, "order placed")

	placed, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading order")
	}
	return placed, nil
}

func (s *service) Get(ctx context.Context, shopper types.Shopper, orderID string) (*models.Order, error) {
	order, err := s.findAuthorized(ctx, shopper, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}

	params = params.Normalize()
	orders, total, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}

	totalPages := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	return &ListResult{
		Orders:     orders,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Status(ctx context.Context, shopper types.Shopper, orderID string) (*StatusView, error) {
	order, err := s.findAuthorized(ctx, shopper, orderID)
	if err != nil {
		return nil, err
	}
	return statusView(order), nil
}

// UpdateStatus moves an order to any valid status. No transition graph is
// enforced, so delivered orders can move back to processing.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status string) (*StatusView, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	affected, err := s.repo.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	if affected == 0 {
		// Zero rows also happens when the status already matches, so confirm
		// the order actually exists before reporting not found.
		if _, findErr := s.repo.FindByOrderID(ctx, orderID); findErr != nil {
			if db.IsNotFound(findErr) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "looking up order")
		}
	}

	order, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading order")
	}

	s.logg.Info(s.logg.WithOrderID(ctx, orderID), "order status updated")
	return statusView(order), nil
}

func (s *service) MarkPaid(ctx context.Context, orderID string, paymentID string) error {
	affected, err := s.repo.MarkPaid(ctx, orderID, paymentID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking order paid")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

func (s *service) findAuthorized(ctx context.Context, shopper types.Shopper, orderID string) (*models.Order, error) {
	order, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up order")
	}
	if !authorizeOrderAccess(order, shopper) {
		// Reads as missing on purpose: responses never confirm whether an
		// order id exists for somebody else.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// authorizeOrderAccess grants access when either identifier matches. A
// request carrying no identity at all passes unchecked, which mirrors how
// guest order lookups have always behaved here. Tightening this requires
// a real account system first.
func authorizeOrderAccess(order *models.Order, shopper types.Shopper) bool {
	if !shopper.HasIdentity() {
		return true
	}
	if shopper.UserID != nil && order.UserID != nil && *shopper.UserID == *order.UserID {
		return true
	}
	if shopper.SessionID != "" && order.SessionID != nil && shopper.SessionID == *order.SessionID {
		return true
	}
	return false
}

func statusView(order *models.Order) *StatusView {
	return &StatusView{
		OrderID:       order.OrderID,
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		UpdatedAt:     order.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// generateOrderID builds the customer facing id: ORD + unix seconds + a four
// digit random suffix. Collisions within the same second are possible; the
// unique index on order_id turns them into an insert error.
func generateOrderID() string {
	return fmt.Sprintf("ORD%d%d", time.Now().Unix(), 1000+rand.Intn(9000))
}
