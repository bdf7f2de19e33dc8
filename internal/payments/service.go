package payments

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verdantloop/verdantloop-backend/pkg/db"
	"github.com/verdantloop/verdantloop-backend/pkg/db/models"
	"github.com/verdantloop/verdantloop-backend/pkg/enums"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// FailureReason names an expected payment rejection. These are business
// outcomes, not errors: the handler renders them as a 4xx payload while
// infrastructure problems travel the error return.
type FailureReason string

const (
	ReasonOrderNotFound     FailureReason = "order_not_found"
	ReasonAlreadyPaid       FailureReason = "already_paid"
	ReasonIncompleteDetails FailureReason = "incomplete_details"
)

// ProcessInput is the raw card form submitted at checkout.
type ProcessInput struct {
	OrderID    string
	CardNumber string
	CardExpiry string
	CardCVV    string
	CardHolder string
}

// Result reports how a payment attempt ended.
type Result struct {
	Success      bool              `json:"success"`
	Reason       FailureReason     `json:"reason,omitempty"`
	PaymentID    string            `json:"payment_id,omitempty"`
	OrderID      string            `json:"order_id"`
	Amount       string            `json:"amount,omitempty"`
	CardType     enums.CardNetwork `json:"card_type,omitempty"`
	CardLastFour string            `json:"card_last_four,omitempty"`
}

type orderReader interface {
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
}

// Service records payments against orders.
type Service interface {
	Process(ctx context.Context, shopper types.Shopper, in ProcessInput) (*Result, error)
}

type service struct {
	repo   Repository
	orders orderReader
	logg   *logger.Logger
}

func NewService(repo Repository, orders orderReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repository is required")
	}
	if orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order reader is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, orders: orders, logg: logg}, nil
}

// Process validates the card form, checks the order is payable and records
// the capture. Only successful captures produce a payments row. Flipping the
// order to paid is a separate follow-up step owned by the caller, so the two
// writes are not atomic.
func (s *service) Process(ctx context.Context, shopper types.Shopper, in ProcessInput) (*Result, error) {
	if reason, ok := validateDetails(in); !ok {
		return &Result{Success: false, Reason: reason, OrderID: in.OrderID}, nil
	}

	order, err := s.orders.FindByOrderID(ctx, in.OrderID)
	if err != nil {
		if db.IsNotFound(err) {
			return &Result{Success: false, Reason: ReasonOrderNotFound, OrderID: in.OrderID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up order")
	}

	// A denied order reads the same as a missing one so the response does
	// not confirm which order ids exist.
	if !shopperOwnsOrder(order, shopper) {
		return &Result{Success: false, Reason: ReasonOrderNotFound, OrderID: in.OrderID}, nil
	}

	if order.PaymentStatus == enums.PaymentStatusPaid {
		return &Result{Success: false, Reason: ReasonAlreadyPaid, OrderID: in.OrderID}, nil
	}

	digits := normalizeCardNumber(in.CardNumber)
	payment := &models.Payment{
		PaymentID:     generatePaymentID(),
		OrderID:       order.OrderID,
		Amount:        order.Total,
		PaymentMethod: order.PaymentMethod,
		CardLastFour:  digits[len(digits)-4:],
		CardType:      ClassifyCard(in.CardNumber),
		Status:        enums.PaymentRecordStatusCompleted,
	}
	if err := s.repo.Insert(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording payment")
	}

	ctx = s.logg.WithOrderID(ctx, order.OrderID)
	s.logg.Info(s.logg.WithField(ctx, "payment_id", payment.PaymentID), "payment recorded")

	return &Result{
		Success:      true,
		PaymentID:    payment.PaymentID,
		OrderID:      order.OrderID,
		Amount:       payment.Amount.StringFixed(2),
		CardType:     payment.CardType,
		CardLastFour: payment.CardLastFour,
	}, nil
}

// shopperOwnsOrder mirrors the order store's access predicate: either
// identifier matching is enough, and a request with no identity passes.
func shopperOwnsOrder(order *models.Order, shopper types.Shopper) bool {
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

func validateDetails(in ProcessInput) (FailureReason, bool) {
	if strings.TrimSpace(in.OrderID) == "" ||
		strings.TrimSpace(in.CardHolder) == "" ||
		strings.TrimSpace(in.CardExpiry) == "" ||
		strings.TrimSpace(in.CardCVV) == "" {
		return ReasonIncompleteDetails, false
	}
	// No Luhn or expiry validity check, just presence. Four digits is the
	// floor because the stored snapshot is the last four.
	if len(normalizeCardNumber(in.CardNumber)) < 4 {
		return ReasonIncompleteDetails, false
	}
	return "", true
}

// generatePaymentID builds the external id: PAY + unix seconds + a four
// digit random suffix, matching the order id scheme.
func generatePaymentID() string {
	return fmt.Sprintf("PAY%d%d", time.Now().Unix(), 1000+rand.Intn(9000))
}
