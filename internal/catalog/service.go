package catalog

import (
	"context"

	"github.com/verdantloop/verdantloop-backend/pkg/db"
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
)

// ProductList is one page of the catalog.
type ProductList struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

type Service interface {
	Products(ctx context.Context, filter ProductFilter) (*ProductList, error)
	Product(ctx context.Context, idOrSlug string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, idOrSlug string) (*models.Category, error)
	Recommendations(ctx context.Context, styles []string, limit int) ([]models.Product, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Products(ctx context.Context, filter ProductFilter) (*ProductList, error) {
	filter.Page = filter.Page.Normalize()

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	if products == nil {
		products = []models.Product{}
	}

	totalPages := int((total + int64(filter.Page.PerPage) - 1) / int64(filter.Page.PerPage))
	return &ProductList{
		Products:   products,
		Total:      total,
		Page:       filter.Page.Page,
		PerPage:    filter.Page.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Product(ctx context.Context, idOrSlug string) (*models.Product, error) {
	if idOrSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindProduct(ctx, idOrSlug)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up product")
	}
	return product, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *service) Category(ctx context.Context, idOrSlug string) (*models.Category, error) {
	if idOrSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}

	category, err := s.repo.FindCategory(ctx, idOrSlug)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up category")
	}
	return category, nil
}

// Recommendations returns products matching any of the given style tags,
// newest first. An empty style set yields an empty list rather than the
// whole catalog.
func (s *service) Recommendations(ctx context.Context, styles []string, limit int) ([]models.Product, error) {
	if len(styles) == 0 {
		return []models.Product{}, nil
	}
	if limit <= 0 || limit > 24 {
		limit = 12
	}

	products, err := s.repo.ListByStyleTags(ctx, styles, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading recommendations")
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
