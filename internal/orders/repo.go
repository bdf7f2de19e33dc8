package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
)

// Repository is the persistence surface for orders and their line items.
type Repository interface {
	Insert(ctx context.Context, order *models.Order) error
	InsertItem(ctx context.Context, item *models.OrderItem) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string, params pagination.Params) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (int64, error)
	MarkPaid(ctx context.Context, orderID string, paymentID string) (int64, error)
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

func (r *repository) Insert(ctx context.Context, order *models.Order) error {
	res := r.conn.WithContext(ctx).Create(order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item *models.OrderItem) error {
	res := r.conn.WithContext(ctx).Create(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.conn.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string, params pagination.Params) ([]models.Order, int64, error) {
	query := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (int64, error) {
	res := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("order_status", status)
	return res.RowsAffected, res.Error
}

// MarkPaid flips the payment status and attaches the payment id. Runs outside
// the payment insert transaction, so a crash in between leaves an order whose
// payment row exists but whose status still reads pending.
func (r *repository) MarkPaid(ctx context.Context, orderID string, paymentID string) (int64, error) {
	res := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"payment_status": enums.PaymentStatusPaid,
			"payment_id":     paymentID,
		})
	return res.RowsAffected, res.Error
}
