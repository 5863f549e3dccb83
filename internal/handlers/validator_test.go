package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/printshop/internal/transport"
)

func validationMessage(t *testing.T, v *Validator, req any) string {
	t.Helper()
	err := v.Validate(req)
	require.Error(t, err)
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusBadRequest, he.Code)
	return he.Message.(string)
}

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&transport.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}))
	// empty fields are left to the service so it can answer with its own message
	require.NoError(t, v.Validate(&transport.RegisterRequest{}))

	require.Equal(t, "email must be a valid email address",
		validationMessage(t, v, &transport.RegisterRequest{Email: "nope"}))
	require.Equal(t, "password must be at least 6 characters",
		validationMessage(t, v, &transport.RegisterRequest{Password: "123"}))
	require.Equal(t, "role must be one of: customer admin",
		validationMessage(t, v, &transport.CreateUserRequest{Role: "owner"}))
	require.Equal(t, "quantity must be at least 0",
		validationMessage(t, v, &transport.CartLineRequest{Quantity: -1}))
}
