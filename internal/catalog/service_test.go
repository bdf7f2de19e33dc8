package catalog

import (
	"context"
	"io"
	"testing"

	"gorm.io/gorm"

	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/pagination"
)

func TestProductsNormalizesPagination(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{total: 25}
	svc := newTestService(t, repo)

	list, err := svc.Products(context.Background(), ProductFilter{
		Page: pagination.Params{Page: -3, PerPage: 500},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Page != 1 || list.PerPage != pagination.MaxPerPage {
		t.Fatalf("pagination not normalized: page=%d per_page=%d", list.Page, list.PerPage)
	}
	if list.TotalPages != 1 {
		t.Fatalf("total pages = %d, want 1", list.TotalPages)
	}
}

func TestProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalogRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Product(context.Background(), "missing-slug")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductRequiresIdentifier(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalogRepo{})
	_, err := svc.Product(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCategoryNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCatalogRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Category(context.Background(), "missing-slug")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecommendationsEmptyStyles(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{}
	svc := newTestService(t, repo)

	got, err := svc.Recommendations(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %d products", len(got))
	}
	if repo.styleQueried {
		t.Fatal("repository should not be hit for an empty style set")
	}
}

func TestRecommendationsClampsLimit(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{}
	svc := newTestService(t, repo)

	_, err := svc.Recommendations(context.Background(), []string{"minimalist"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.styleLimit != 12 {
		t.Fatalf("limit = %d, want default 12", repo.styleLimit)
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, logg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

type stubCatalogRepo struct {
	products []models.Product
	total    int64
	findErr  error

	styleQueried bool
	styleLimit   int
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCatalogRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	return s.products, s.total, nil
}

func (s *stubCatalogRepo) FindProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &models.Product{Slug: idOrSlug}, nil
}

func (s *stubCatalogRepo) ListByStyleTags(ctx context.Context, styles []string, limit int) ([]models.Product, error) {
	s.styleQueried = true
	s.styleLimit = limit
	return s.products, nil
}

func (s *stubCatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (s *stubCatalogRepo) FindCategory(ctx context.Context, idOrSlug string) (*models.Category, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &models.Category{Slug: idOrSlug}, nil
}
