package orders

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/internal/cart"
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

func TestGenerateOrderIDShape(t *testing.T) {
	t.Parallel()

	id := generateOrderID()
	if !strings.HasPrefix(id, "ORD") {
		t.Fatalf("order id %q missing ORD prefix", id)
	}
	if len(id) < len("ORD")+10+4 {
		t.Fatalf("order id %q too short", id)
	}
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	t.Parallel()

	carts := &stubCartRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, &stubOrdersRepo{}, carts)

	_, err := svc.CreateFromCart(context.Background(), types.NewShopper("", "sess-1"), CreateInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateFromCartNoItems(t *testing.T) {
	t.Parallel()

	carts := &stubCartRepo{cart: &models.Cart{ID: uuid.New()}}
	svc := newTestService(t, &stubOrdersRepo{}, carts)

	_, err := svc.CreateFromCart(context.Background(), types.NewShopper("", "sess-1"), CreateInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateFromCartItemFailureAbortsOrder(t *testing.T) {
	t.Parallel()

	carts := &stubCartRepo{
		cart: &models.Cart{ID: uuid.New()},
		items: []cart.ItemDetail{
			{ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("10.00"), ProductName: "tote"},
		},
	}
	repo := &stubOrdersRepo{insertItemErr: errors.New("boom")}
	svc := newTestService(t, repo, carts)

	_, err := svc.CreateFromCart(context.Background(), types.NewShopper("", "sess-1"), CreateInput{})
	if err == nil {
		t.Fatal("expected error when item insert fails")
	}
	if carts.cleared {
		t.Fatal("cart must not be cleared when the transaction fails")
	}
}

func TestCreateFromCartOrderInsertFailureAborts(t *testing.T) {
	t.Parallel()

	carts := &stubCartRepo{
		cart: &models.Cart{ID: uuid.New()},
		items: []cart.ItemDetail{
			{ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("10.00"), ProductName: "tote"},
		},
	}
	repo := &stubOrdersRepo{insertErr: gorm.ErrInvalidData}
	svc := newTestService(t, repo, carts)

	_, err := svc.CreateFromCart(context.Background(), types.NewShopper("", "sess-1"), CreateInput{})
	if err == nil {
		t.Fatal("expected error when the order insert affects no rows")
	}
	if len(repo.items) != 0 {
		t.Fatal("no item snapshots should be written after a failed order insert")
	}
	if carts.cleared {
		t.Fatal("cart must not be cleared when the transaction fails")
	}
}

func TestCreateFromCartPricesAndClears(t *testing.T) {
	t.Parallel()

	carts := &stubCartRepo{
		cart: &models.Cart{ID: uuid.New()},
		items: []cart.ItemDetail{
			{ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("20.00"), ProductName: "hemp-tee"},
		},
	}
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, carts)

	order, err := svc.CreateFromCart(context.Background(), types.NewShopper("user-1", "sess-1"), CreateInput{
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Subtotal.StringFixed(2) != "40.00" || order.Total.StringFixed(2) != "49.19" {
		t.Fatalf("unexpected totals: subtotal=%s total=%s", order.Subtotal, order.Total)
	}
	if len(repo.items) != 1 || repo.items[0].Name != "hemp-tee" {
		t.Fatalf("expected one snapshotted item, got %+v", repo.items)
	}
	if !carts.cleared {
		t.Fatal("cart should be cleared after commit")
	}
	if order.OrderStatus != enums.OrderStatusProcessing || order.PaymentStatus != enums.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses: %+v", order)
	}
}

func TestGetDeniesForeignShopper(t *testing.T) {
	t.Parallel()

	owner := "user-1"
	ownerSession := "sess-owner"
	repo := &stubOrdersRepo{
		order: &models.Order{OrderID: "ORD1", UserID: &owner, SessionID: &ownerSession},
	}
	svc := newTestService(t, repo, &stubCartRepo{})

	_, err := svc.Get(context.Background(), types.NewShopper("user-2", "sess-other"), "ORD1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
	// Denial is indistinguishable from a missing order.
	if typed.Message() != "order not found" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestGetAllowsSessionMatch(t *testing.T) {
	t.Parallel()

	ownerSession := "sess-owner"
	repo := &stubOrdersRepo{
		order: &models.Order{OrderID: "ORD1", SessionID: &ownerSession},
	}
	svc := newTestService(t, repo, &stubCartRepo{})

	got, err := svc.Get(context.Background(), types.NewShopper("", "sess-owner"), "ORD1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OrderID != "ORD1" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetAllowsAnonymousLookup(t *testing.T) {
	t.Parallel()

	owner := "user-1"
	repo := &stubOrdersRepo{
		order: &models.Order{OrderID: "ORD1", UserID: &owner},
	}
	svc := newTestService(t, repo, &stubCartRepo{})

	// No identity supplied means no ownership check at all.
	if _, err := svc.Get(context.Background(), types.Shopper{}, "ORD1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrdersRepo{}, &stubCartRepo{})
	_, err := svc.UpdateStatus(context.Background(), "ORD1", "returned")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrdersRepo{findErr: gorm.ErrRecordNotFound}, &stubCartRepo{})
	_, err := svc.UpdateStatus(context.Background(), "ORD-missing", "shipped")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListForUserRequiresUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrdersRepo{}, &stubCartRepo{})
	_, err := svc.ListForUser(context.Background(), "", pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkPaidMissingOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrdersRepo{}, &stubCartRepo{})
	err := svc.MarkPaid(context.Background(), "ORD-missing", "PAY1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func newTestService(t *testing.T, repo Repository, carts cart.Repository) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, carts, stubTxRunner{}, logg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrdersRepo struct {
	order         *models.Order
	findErr       error
	insertErr     error
	insertItemErr error

	inserted *models.Order
	items    []models.OrderItem
	paid     bool
	affected int64
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Insert(ctx context.Context, order *models.Order) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = order
	return nil
}

func (s *stubOrdersRepo) InsertItem(ctx context.Context, item *models.OrderItem) error {
	if s.insertItemErr != nil {
		return s.insertItemErr
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *stubOrdersRepo) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.order != nil {
		return s.order, nil
	}
	if s.inserted != nil && s.inserted.OrderID == orderID {
		return s.inserted, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) ListForUser(ctx context.Context, userID string, params pagination.Params) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (int64, error) {
	return s.affected, nil
}

func (s *stubOrdersRepo) MarkPaid(ctx context.Context, orderID string, paymentID string) (int64, error) {
	if s.order == nil && s.inserted == nil {
		return 0, nil
	}
	s.paid = true
	return 1, nil
}

type stubCartRepo struct {
	cart    *models.Cart
	findErr error
	items   []cart.ItemDetail
	cleared bool
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cart.Repository { return s }

func (s *stubCartRepo) FindNewestForShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.cart == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

func (s *stubCartRepo) Create(ctx context.Context, c *models.Cart) error { return nil }

func (s *stubCartRepo) FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uuid.UUID) (*models.CartItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) InsertItem(ctx context.Context, item *models.CartItem) error { return nil }

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error { return nil }

func (s *stubCartRepo) DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error {
	s.cleared = true
	return nil
}

func (s *stubCartRepo) ItemDetails(ctx context.Context, cartID uuid.UUID) ([]cart.ItemDetail, error) {
	return s.items, nil
}
