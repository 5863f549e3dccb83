package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/testutil"
	"github.com/Skotchmaster/printshop/pkg/hash"
)

func TestRun_ResetsCatalogue(t *testing.T) {
	r := &repo.GormRepo{DB: testutil.OpenDB(t)}
	ctx := context.Background()

	stray := &models.User{Name: "Old", Email: "old@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, r.CreateUserIfNotExists(ctx, stray))

	n, err := Run(ctx, r)
	require.NoError(t, err)
	require.Equal(t, len(samples), n)

	// running twice must not trip the unique sku or email indexes
	_, err = Run(ctx, r)
	require.NoError(t, err)

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, AdminEmail, users[0].Email)
	require.True(t, users[0].IsAdmin())
	require.True(t, hash.CheckPassword(users[0].PasswordHash, AdminPassword))

	products, err := r.ListProducts(ctx, repo.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, len(samples))
	for _, p := range products {
		require.Equal(t, users[0].ID, p.UserID)
		require.NotEmpty(t, p.FirstImage())
	}
}
