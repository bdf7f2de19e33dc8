package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// Repository is the persistence surface for carts and their items.
type Repository interface {
	FindNewestForShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error

	FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error)
	FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uuid.UUID) (*models.CartItem, error)
	InsertItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error

	ItemDetails(ctx context.Context, cartID uuid.UUID) ([]ItemDetail, error)

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

// FindNewestForShopper prefers the user's cart when a user id is present and
// falls back to the session cart. Newest wins when duplicates exist.
func (r *repository) FindNewestForShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	query := r.conn.WithContext(ctx)
	if shopper.UserID != nil {
		query = query.Where("user_id = ?", *shopper.UserID)
	} else {
		query = query.Where("session_id = ?", shopper.SessionID)
	}

	var cart models.Cart
	if err := query.Order("created_at DESC").First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.conn.WithContext(ctx).Create(cart).Error
}

// FindItem matches on product and variant. A nil variant only matches rows
// whose variant is also null, so "Shirt size M" and plain "Shirt" stay
// separate lines.
func (r *repository) FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error) {
	query := r.conn.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID)
	if variantID == nil {
		query = query.Where("variant_id IS NULL")
	} else {
		query = query.Where("variant_id = ?", *variantID)
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemByID(ctx context.Context, cartID uuid.UUID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.conn.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) InsertItem(ctx context.Context, item *models.CartItem) error {
	return r.conn.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.conn.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.conn.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{}).Error
}

func (r *repository) DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error {
	return r.conn.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

const itemDetailsQuery = `
SELECT
    ci.id          AS cart_item_id,
    ci.product_id  AS product_id,
    ci.variant_id  AS variant_id,
    ci.quantity    AS quantity,
    p.name         AS product_name,
    p.slug         AS product_slug,
    p.price        AS price,
    pv.name        AS variant_name,
    pv.value       AS variant_value,
    (SELECT pi.image_url
       FROM product_images pi
      WHERE pi.product_id = p.id
      ORDER BY pi.is_primary DESC, pi.sort_order ASC
      LIMIT 1)     AS image_url
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
LEFT JOIN product_variants pv ON pv.id = ci.variant_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC`

func (r *repository) ItemDetails(ctx context.Context, cartID uuid.UUID) ([]ItemDetail, error) {
	var details []ItemDetail
	err := r.conn.WithContext(ctx).
		Raw(itemDetailsQuery, cartID).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
