package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/transport"
)

func placeOrder(t *testing.T, svc *CheckoutService, buyer *models.User) *models.Order {
	t.Helper()
	ctx := context.Background()
	c, err := svc.Create(ctx, buyer, sampleCheckout())
	require.NoError(t, err)
	_, err = svc.Pay(ctx, buyer, c.ID, transport.PayRequest{PaymentStatus: "paid"})
	require.NoError(t, err)
	o, err := svc.Finalize(ctx, buyer, c.ID)
	require.NoError(t, err)
	return o
}

func TestOrders_AccessAndStatus(t *testing.T) {
	checkouts, _ := newTestCheckoutService(t)
	pub := &fakePublisher{}
	svc := &OrderService{Repo: checkouts.Repo, Events: pub}
	ctx := context.Background()

	buyer := createUser(t, svc.Repo, "buyer@example.com", models.RoleCustomer)
	other := createUser(t, svc.Repo, "other@example.com", models.RoleCustomer)
	order := placeOrder(t, checkouts, buyer)

	mine, err := svc.MyOrders(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	got, err := svc.Get(ctx, buyer, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, buyer.Email, got.User.Email)

	_, err = svc.Get(ctx, other, order.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Order not found", Message(err))

	_, err = svc.UpdateStatus(ctx, order.ID, "Lost")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid order status", Message(err))

	same, err := svc.UpdateStatus(ctx, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, same.Status)

	shipped, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)
	assert.False(t, shipped.IsDelivered)

	delivered, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.NotNil(t, delivered.DeliveredAt)

	_, err = svc.UpdateStatus(ctx, uuid.New(), models.OrderStatusShipped)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, order.ID))
	require.ErrorIs(t, svc.Delete(ctx, order.ID), ErrNotFound)
}

func TestOrders_ExportCSV(t *testing.T) {
	checkouts, _ := newTestCheckoutService(t)
	svc := &OrderService{Repo: checkouts.Repo}
	buyer := createUser(t, svc.Repo, "buyer@example.com", models.RoleCustomer)
	order := placeOrder(t, checkouts, buyer)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "order_number,order_id,created_at,customer_name,customer_email"))
	assert.Contains(t, lines[1], order.ID.String())
	assert.Contains(t, lines[1], "buyer@example.com")
	assert.Contains(t, lines[1], "1000.00")
}
