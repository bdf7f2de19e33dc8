package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersDDL := `
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE,
  user_id TEXT,
  session_id TEXT,
  subtotal TEXT NOT NULL,
  shipping_cost TEXT NOT NULL,
  tax TEXT NOT NULL,
  total TEXT NOT NULL,
  shipping_method TEXT NOT NULL DEFAULT 'standard',
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  order_status TEXT NOT NULL DEFAULT 'processing',
  payment_id TEXT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  country TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	itemsDDL := `
CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  name TEXT NOT NULL,
  image_url TEXT,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(ordersDDL).Error)
	require.NoError(t, conn.Exec(itemsDDL).Error)
	return conn
}

func newOrder(orderID string, userID *string, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:             uuid.New(),
		OrderID:        orderID,
		UserID:         userID,
		Subtotal:       decimal.RequireFromString("40.00"),
		ShippingCost:   decimal.RequireFromString("5.99"),
		Tax:            decimal.RequireFromString("3.20"),
		Total:          decimal.RequireFromString("49.19"),
		ShippingMethod: enums.ShippingMethodStandard,
		PaymentMethod:  "card",
		PaymentStatus:  enums.PaymentStatusPending,
		OrderStatus:    enums.OrderStatusProcessing,
		FirstName:      "Ada",
		LastName:       "Reyes",
		Email:          "ada@example.com",
		Address:        "1 Main St",
		City:           "Portland",
		PostalCode:     "97201",
		Country:        "US",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestRepositoryInsertAndFindWithItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := &repository{conn: conn}
	ctx := context.Background()

	order := newOrder("ORD17001", nil, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, order))

	item := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   order.OrderID,
		ProductID: uuid.New(),
		Quantity:  2,
		Price:     decimal.RequireFromString("20.00"),
		Name:      "hemp-tee",
	}
	require.NoError(t, repo.InsertItem(ctx, item))

	got, err := repo.FindByOrderID(ctx, "ORD17001")
	require.NoError(t, err)
	assert.Equal(t, "ORD17001", got.OrderID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "hemp-tee", got.Items[0].Name)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("49.19")))
}

func TestRepositoryListForUserPaginates(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := &repository{conn: conn}
	ctx := context.Background()

	userID := "user-9"
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		order := newOrder(generateOrderID()+string(rune('a'+i)), &userID, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Insert(ctx, order))
	}
	other := "user-other"
	require.NoError(t, repo.Insert(ctx, newOrder("ORD-other", &other, base)))

	orders, total, err := repo.ListForUser(ctx, userID, pagination.Params{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, orders, 2)
	// Newest first.
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))

	second, _, err := repo.ListForUser(ctx, userID, pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := &repository{conn: conn}
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newOrder("ORD17002", nil, time.Now().UTC())))

	affected, err := repo.UpdateStatus(ctx, "ORD17002", enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := repo.FindByOrderID(ctx, "ORD17002")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, got.OrderStatus)

	affected, err = repo.UpdateStatus(ctx, "ORD-missing", enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestRepositoryMarkPaid(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := &repository{conn: conn}
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newOrder("ORD17003", nil, time.Now().UTC())))

	affected, err := repo.MarkPaid(ctx, "ORD17003", "PAY17003")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := repo.FindByOrderID(ctx, "ORD17003")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, got.PaymentStatus)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, "PAY17003", *got.PaymentID)
}
