package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/tokens"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakePublisher) {
	pub := &fakePublisher{}
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  time.Hour,
		Events:    pub,
	}, pub
}

func TestAuthService_Register(t *testing.T) {
	svc, pub := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, transport.RegisterRequest{Name: "Ann", Email: " Ann@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.User.Email)
	assert.Equal(t, models.RoleCustomer, res.User.Role)

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	assert.Equal(t, []string{mykafka.EventUserRegistered}, pub.types())
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transport.RegisterRequest{Name: "Other", Email: "ann@example.com", Password: "secret2"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "User already exists", Message(err))

	users, err := svc.Repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), transport.RegisterRequest{Email: "ann@example.com"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid Email", Message(err))

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid Password", Message(err))
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, transport.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret)
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, u.ID)

	require.NoError(t, svc.Repo.DeleteUser(ctx, u.ID))
	_, err = svc.Authenticate(ctx, claims)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Checkout not paid", Message(errCheckoutNotPaid))
	assert.Equal(t, "Product not found", Message(notFound(gorm.ErrRecordNotFound, "Product not found")))
	assert.Equal(t, 404, HTTPStatus(errCheckoutNotFound))
	assert.Equal(t, 400, HTTPStatus(errAlreadyFinalized))
}
