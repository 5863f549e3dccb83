package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

var (
	errCheckoutNotFound  = fmt.Errorf("%w: Checkout not found", ErrNotFound)
	errAlreadyFinalized  = fmt.Errorf("%w: Checkout already finalized", ErrValidation)
	errCheckoutNotPaid   = fmt.Errorf("%w: Checkout not paid", ErrValidation)
	errInvalidPayStatus  = fmt.Errorf("%w: Invalid payment status", ErrValidation)
	errNoCheckoutItems   = fmt.Errorf("%w: No items in Checkout", ErrValidation)
	errInvalidCheckoutLn = fmt.Errorf("%w: Each item needs a product, a positive quantity and a price", ErrValidation)
)

type CheckoutService struct {
	Repo   *repo.GormRepo
	IDs    *snowflake.Node
	Events mykafka.Publisher
	Now    func() time.Time
}

func (s *CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// canAccess hides other users' records behind a not-found answer.
func canAccess(user *models.User, owner uuid.UUID) bool {
	return user != nil && (user.ID == owner || user.IsAdmin())
}

func (s *CheckoutService) Create(ctx context.Context, user *models.User, req transport.CheckoutRequest) (*models.Checkout, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.create", "user_id", user.ID)

	if len(req.CheckoutItems) == 0 {
		return nil, errNoCheckoutItems
	}

	items := make([]models.CheckoutItem, 0, len(req.CheckoutItems))
	lines := make([]models.LineItem, 0, len(req.CheckoutItems))
	for i, it := range req.CheckoutItems {
		if it.ProductID == uuid.Nil || it.Quantity <= 0 || it.Price.IsNegative() {
			return nil, errInvalidCheckoutLn
		}
		it.Position = i
		lines = append(lines, it)
		items = append(items, models.CheckoutItem{LineItem: it})
	}

	total := models.SumLines(lines)
	if !req.TotalPrice.IsZero() && !req.TotalPrice.Equal(total) {
		l.Warnw("checkout_total_mismatch", "client_total", req.TotalPrice, "computed_total", total)
	}

	c := &models.Checkout{
		UserID:          user.ID,
		CheckoutItems:   items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		TotalPrice:      total,
		PaymentStatus:   models.PaymentPending,
	}
	if err := s.Repo.CreateCheckout(ctx, c); err != nil {
		l.Errorw("create_checkout_error", "status", 500, "error", err)
		return nil, err
	}
	l.Infow("checkout_created", "checkout_id", c.ID, "total", total)
	return c, nil
}

func (s *CheckoutService) Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.Checkout, error) {
	c, err := s.Repo.GetCheckout(ctx, id)
	if err != nil {
		return nil, notFound(err, "Checkout not found")
	}
	if !canAccess(user, c.UserID) {
		return nil, errCheckoutNotFound
	}
	return c, nil
}

// Pay marks the checkout paid when the reported status is "paid" in any
// letter case. Any other status is rejected and nothing changes.
func (s *CheckoutService) Pay(ctx context.Context, user *models.User, id uuid.UUID, req transport.PayRequest) (*models.Checkout, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.pay", "checkout_id", id)

	var out *models.Checkout
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		c, err := tx.LockCheckout(ctx, id)
		if err != nil {
			return notFound(err, "Checkout not found")
		}
		if !canAccess(user, c.UserID) {
			return errCheckoutNotFound
		}
		if c.IsFinalized {
			return errAlreadyFinalized
		}
		if !strings.EqualFold(strings.TrimSpace(req.PaymentStatus), "paid") {
			return errInvalidPayStatus
		}

		paidAt := s.now()
		var details datatypes.JSON
		if len(req.PaymentDetails) > 0 {
			details = datatypes.JSON(req.PaymentDetails)
		}
		if err := tx.UpdateCheckout(ctx, id, map[string]any{
			"is_paid":         true,
			"payment_status":  models.PaymentPaid,
			"paid_at":         paidAt,
			"payment_details": details,
		}); err != nil {
			return err
		}

		c.IsPaid = true
		c.PaymentStatus = models.PaymentPaid
		c.PaidAt = &paidAt
		c.PaymentDetails = details
		out = c
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
			l.Warnw("pay_checkout_error", "status", HTTPStatus(err), "reason", Message(err))
		} else {
			l.Errorw("pay_checkout_error", "status", 500, "error", err)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicOrderEvents, id.String(),
		mykafka.NewEvent(mykafka.EventCheckoutPaid, id.String(), out.UserID.String(), nil))
	l.Infow("checkout_paid")
	return out, nil
}

func orderFromCheckout(c *models.Checkout, number int64) *models.Order {
	items := make([]models.OrderItem, 0, len(c.CheckoutItems))
	for _, it := range c.CheckoutItems {
		items = append(items, models.OrderItem{LineItem: it.LineItem})
	}
	return &models.Order{
		Number:          number,
		UserID:          c.UserID,
		CheckoutID:      c.ID,
		OrderItems:      items,
		ShippingAddress: c.ShippingAddress,
		PaymentMethod:   c.PaymentMethod,
		TotalPrice:      c.TotalPrice,
		IsPaid:          true,
		PaidAt:          c.PaidAt,
		IsDelivered:     false,
		PaymentStatus:   models.PaymentPaid,
		PaymentDetails:  c.PaymentDetails,
		Status:          models.OrderStatusProcessing,
	}
}

// Finalize turns a paid checkout into an order and clears the buyer's cart.
// Claiming the checkout, creating the order and deleting the cart happen in
// one transaction; the claim is a conditional update, so concurrent calls
// yield a single order.
func (s *CheckoutService) Finalize(ctx context.Context, user *models.User, id uuid.UUID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.finalize", "checkout_id", id)

	var order *models.Order
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		c, err := tx.GetCheckout(ctx, id)
		if err != nil {
			return notFound(err, "Checkout not found")
		}
		if !canAccess(user, c.UserID) {
			return errCheckoutNotFound
		}

		claimed, err := tx.ClaimCheckout(ctx, id, s.now())
		if err != nil {
			return err
		}
		if !claimed {
			if !c.IsPaid {
				return errCheckoutNotPaid
			}
			return errAlreadyFinalized
		}

		order = orderFromCheckout(c, s.IDs.Generate().Int64())
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return tx.DeleteUserCart(ctx, c.UserID)
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
			l.Warnw("finalize_checkout_error", "status", HTTPStatus(err), "reason", Message(err))
		} else {
			l.Errorw("finalize_checkout_error", "status", 500, "error", err)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicOrderEvents, order.ID.String(),
		mykafka.NewEvent(mykafka.EventOrderCreated, order.ID.String(), order.UserID.String(), order))
	l.Infow("checkout_finalized", "order_id", order.ID, "order_number", order.Number)
	return order, nil
}
