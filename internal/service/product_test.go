package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/transport"
)

func ptr[T any](v T) *T { return &v }

func productRequest(sku string, price int64) transport.ProductRequest {
	return transport.ProductRequest{
		Name:        ptr("Desk lamp"),
		Description: ptr("Printed lithophane lamp"),
		Price:       ptr(decimal.NewFromInt(price)),
		SKU:         ptr(sku),
		Category:    ptr("Lamps"),
		Sizes:       []string{"S", "S", " M "},
		Images:      []models.ProductImage{{URL: "https://img/lamp.png", AltText: "lamp"}},
	}
}

func TestProduct_CreateUpdateDelete(t *testing.T) {
	r := newTestRepo(t)
	idx := newFakeIndex()
	pub := &fakePublisher{}
	svc := &ProductService{Repo: r, Index: idx, Events: pub}
	ctx := context.Background()
	admin := createUser(t, r, "admin@example.com", models.RoleAdmin)

	p, err := svc.Create(ctx, admin.ID, productRequest("LAMP-1", 40))
	require.NoError(t, err)
	assert.Equal(t, admin.ID, p.UserID)
	assert.Equal(t, models.StringArray{"S", "M"}, p.Sizes)
	assert.Contains(t, idx.docs, p.ID)

	_, err = svc.Create(ctx, admin.ID, productRequest("LAMP-1", 40))
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Product with this SKU already exists", Message(err))

	_, err = svc.Create(ctx, admin.ID, productRequest("LAMP-2", -1))
	require.ErrorIs(t, err, ErrValidation)

	bad := productRequest("LAMP-3", 10)
	bad.Name = nil
	_, err = svc.Create(ctx, admin.ID, bad)
	require.ErrorIs(t, err, ErrValidation)

	other, err := svc.Create(ctx, admin.ID, productRequest("LAMP-4", 10))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, transport.ProductRequest{Price: ptr(decimal.NewFromInt(55)), IsFeatured: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(55)))
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Desk lamp", updated.Name)

	_, err = svc.Update(ctx, other.ID, transport.ProductRequest{SKU: ptr("LAMP-1")})
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Contains(t, idx.deleted, p.ID)
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)

	assert.Contains(t, pub.types(), mykafka.EventProductCreated)
	assert.Contains(t, pub.types(), mykafka.EventProductUpdated)
	assert.Contains(t, pub.types(), mykafka.EventProductDeleted)
}

func TestProduct_SearchFallsBackToDatabase(t *testing.T) {
	r := newTestRepo(t)
	idx := newFakeIndex()
	idx.fail = true
	svc := &ProductService{Repo: r, Index: idx}
	ctx := context.Background()

	createProduct(t, r, "A", 10)
	createProduct(t, r, "B", 10)
	createProduct(t, r, "C", 10)

	page, err := svc.Search(ctx, "plank", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Meta.Total)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 2, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)
	assert.False(t, page.Meta.HasPrev)
}

func TestProduct_SearchUsesIndex(t *testing.T) {
	r := newTestRepo(t)
	idx := newFakeIndex()
	svc := &ProductService{Repo: r, Index: idx}
	ctx := context.Background()

	p := createProduct(t, r, "A", 10)
	createProduct(t, r, "B", 10)
	idx.docs[p.ID] = p

	page, err := svc.Search(ctx, "anything", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, p.ID, page.Data[0].ID)
}

func TestProduct_ListAndSimilar(t *testing.T) {
	r := newTestRepo(t)
	svc := &ProductService{Repo: r}
	ctx := context.Background()

	a := createProduct(t, r, "A", 10)
	createProduct(t, r, "B", 20)
	createProduct(t, r, "C", 30)

	items, err := svc.List(ctx, transport.ProductQuery{Category: "planks", SortBy: "priceDesc", Limit: "2", MinPrice: "15"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].SKU)

	similar, err := svc.Similar(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, similar, 2)

	arrivals, err := svc.NewArrivals(ctx)
	require.NoError(t, err)
	assert.Len(t, arrivals, 3)

	best, err := svc.BestSeller(ctx)
	require.NoError(t, err)
	assert.NotNil(t, best)
}
