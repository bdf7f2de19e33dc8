package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantloop/verdantloop-backend/pkg/db"
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

var (
	taxRate      = decimal.RequireFromString("0.08")
	flatShipping = decimal.RequireFromString("5.99")
)

// Service owns cart lifecycle and pricing.
type Service interface {
	GetOrCreate(ctx context.Context, shopper types.Shopper) (*models.Cart, error)
	Summary(ctx context.Context, shopper types.Shopper) (*Summary, error)
	AddItem(ctx context.Context, shopper types.Shopper, in AddItemInput) (*Summary, error)
	UpdateItem(ctx context.Context, shopper types.Shopper, itemID uuid.UUID, quantity int) (*Summary, error)
	RemoveItem(ctx context.Context, shopper types.Shopper, itemID uuid.UUID) (*Summary, error)
	Clear(ctx context.Context, shopper types.Shopper) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repository is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetOrCreate returns the shopper's newest cart, creating an empty one when
// none exists yet. Reads and writes both funnel through here so a shopper
// always has exactly one active cart.
func (s *service) GetOrCreate(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	if !shopper.HasIdentity() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a user id or session id is required")
	}

	existing, err := s.repo.FindNewestForShopper(ctx, shopper)
	if err == nil {
		return existing, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart")
	}

	cart := &models.Cart{UserID: shopper.UserID}
	if shopper.SessionID != "" {
		sessionID := shopper.SessionID
		cart.SessionID = &sessionID
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}

	s.logg.Info(s.logg.WithField(ctx, "cart_id", cart.ID.String()), "created cart")
	return cart, nil
}

func (s *service) Summary(ctx context.Context, shopper types.Shopper) (*Summary, error) {
	cart, err := s.GetOrCreate(ctx, shopper)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, cart.ID)
}

// AddItem appends a product to the cart. An existing line with the same
// product and variant accumulates quantity instead of duplicating.
func (s *service) AddItem(ctx context.Context, shopper types.Shopper, in AddItemInput) (*Summary, error) {
	if in.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if in.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	cart, err := s.GetOrCreate(ctx, shopper)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindItem(ctx, cart.ID, in.ProductID, in.VariantID)
	switch {
	case err == nil:
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+in.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item quantity")
		}
	case db.IsNotFound(err):
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
		}
		if err := s.repo.InsertItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart item")
	}

	return s.buildSummary(ctx, cart.ID)
}

// UpdateItem sets a line's quantity. Zero or negative removes the line.
func (s *service) UpdateItem(ctx context.Context, shopper types.Shopper, itemID uuid.UUID, quantity int) (*Summary, error) {
	cart, err := s.requireCart(ctx, shopper)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, cart.ID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart item")
	}

	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
		}
	} else {
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item quantity")
		}
	}

	return s.buildSummary(ctx, cart.ID)
}

func (s *service) RemoveItem(ctx context.Context, shopper types.Shopper, itemID uuid.UUID) (*Summary, error) {
	cart, err := s.requireCart(ctx, shopper)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, cart.ID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart item")
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
	}

	return s.buildSummary(ctx, cart.ID)
}

// Clear wipes every line from the shopper's cart. A shopper with no cart is
// already clear, so that is a success rather than a 404.
func (s *service) Clear(ctx context.Context, shopper types.Shopper) error {
	if !shopper.HasIdentity() {
		return pkgerrors.New(pkgerrors.CodeValidation, "a user id or session id is required")
	}

	cart, err := s.repo.FindNewestForShopper(ctx, shopper)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart")
	}
	if err := s.repo.DeleteItemsByCart(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func (s *service) requireCart(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	if !shopper.HasIdentity() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a user id or session id is required")
	}

	cart, err := s.repo.FindNewestForShopper(ctx, shopper)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up cart")
	}
	return cart, nil
}

func (s *service) buildSummary(ctx context.Context, cartID uuid.UUID) (*Summary, error) {
	items, err := s.repo.ItemDetails(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart items")
	}
	if items == nil {
		items = []ItemDetail{}
	}
	return &Summary{
		CartID: cartID,
		Items:  items,
		Totals: ComputeTotals(items),
	}, nil
}

// PriceBreakdown prices a set of cart lines: 8% tax on the subtotal and a
// flat shipping charge whenever the cart is non-empty.
func PriceBreakdown(items []ItemDetail) (subtotal, tax, shipping, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	tax = subtotal.Mul(taxRate).Round(2)
	shipping = decimal.Zero
	if subtotal.IsPositive() {
		shipping = flatShipping
	}
	total = subtotal.Add(tax).Add(shipping)
	return subtotal, tax, shipping, total
}

// ComputeTotals renders the breakdown as fixed two decimal strings.
func ComputeTotals(items []ItemDetail) Totals {
	subtotal, tax, shipping, total := PriceBreakdown(items)

	itemCount := 0
	for _, item := range items {
		itemCount += item.Quantity
	}

	return Totals{
		Subtotal:  subtotal.StringFixed(2),
		Tax:       tax.StringFixed(2),
		Shipping:  shipping.StringFixed(2),
		Total:     total.StringFixed(2),
		ItemCount: itemCount,
	}
}
