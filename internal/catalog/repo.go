package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
)

// ProductFilter narrows the product listing.
type ProductFilter struct {
	Category string
	Search   string
	Style    string
	Featured *bool
	Sort     string
	Page     pagination.Params
}

type Repository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	FindProduct(ctx context.Context, idOrSlug string) (*models.Product, error)
	ListByStyleTags(ctx context.Context, styles []string, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, idOrSlug string) (*models.Category, error)
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

func (r *repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)

	if filter.Category != "" {
		if id, err := uuid.Parse(filter.Category); err == nil {
			query = query.Where("category_id = ?", id)
		} else {
			query = query.Where(
				"category_id IN (SELECT id FROM categories WHERE slug = ?)",
				filter.Category,
			)
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Style != "" {
		query = query.Where("? = ANY(style_tags)", filter.Style)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	err := query.
		Preload("Variants").
		Preload("Images", func(conn *gorm.DB) *gorm.DB {
			return conn.Order("is_primary DESC, sort_order ASC")
		}).
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) FindProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	query := r.conn.WithContext(ctx).
		Preload("Category").
		Preload("Variants").
		Preload("Images", func(conn *gorm.DB) *gorm.DB {
			return conn.Order("is_primary DESC, sort_order ASC")
		})

	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", idOrSlug)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByStyleTags returns active products whose style tags overlap the given
// set. Uses the postgres array overlap operator, so there is no sqlite
// equivalent for this path.
func (r *repository) ListByStyleTags(ctx context.Context, styles []string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.conn.WithContext(ctx).
		Where("is_active = ?", true).
		Where("style_tags && ?", pq.Array(styles)).
		Preload("Images", func(conn *gorm.DB) *gorm.DB {
			return conn.Order("is_primary DESC, sort_order ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindCategory(ctx context.Context, idOrSlug string) (*models.Category, error) {
	query := r.conn.WithContext(ctx).Preload("Subcategories")

	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", idOrSlug)
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.conn.WithContext(ctx).
		Where("parent_id IS NULL").
		Preload("Subcategories").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
