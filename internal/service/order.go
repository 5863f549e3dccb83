package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
	Now    func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	if !canAccess(user, o.UserID) {
		return nil, fmt.Errorf("%w: Order not found", ErrNotFound)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

// UpdateStatus sets the order status. Delivered also flags the order as
// delivered and stamps the time; an empty status changes nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "orders.update_status", "order_id", id)

	status = strings.TrimSpace(status)
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: Invalid order status", ErrValidation)
	}

	if status != "" {
		fields := map[string]any{"status": status}
		if status == models.OrderStatusDelivered {
			fields["is_delivered"] = true
			fields["delivered_at"] = s.now()
		}
		if err := s.Repo.UpdateOrder(ctx, id, fields); err != nil {
			return nil, notFound(err, "Order not found")
		}
	}

	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}

	if status != "" {
		publish(ctx, s.Events, mykafka.TopicOrderEvents, id.String(),
			mykafka.NewEvent(mykafka.EventOrderUpdated, id.String(), o.UserID.String(), map[string]any{"status": status}))
		l.Infow("order_status_updated", "status", status)
	}
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "Order not found")
	}
	publish(ctx, s.Events, mykafka.TopicOrderEvents, id.String(),
		mykafka.NewEvent(mykafka.EventOrderDeleted, id.String(), "", nil))
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func orderRow(o models.Order) transport.OrderRow {
	row := transport.OrderRow{
		OrderNumber:   o.Number,
		OrderID:       o.ID.String(),
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		Items:         len(o.OrderItems),
		TotalPrice:    o.TotalPrice.StringFixed(2),
		PaymentMethod: o.PaymentMethod,
		IsPaid:        o.IsPaid,
		Status:        o.Status,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   formatTime(o.DeliveredAt),
		City:          o.ShippingAddress.City,
		Country:       o.ShippingAddress.Country,
	}
	if o.User != nil {
		row.CustomerName = o.User.Name
		row.CustomerEmail = o.User.Email
	}
	return row
}

// ExportCSV writes every order as one CSV row.
func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.Repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	rows := make([]transport.OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow(o))
	}
	return gocsv.Marshal(rows, w)
}
