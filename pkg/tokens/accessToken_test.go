package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestNewAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	token, exp, err := NewAccessToken(id, "admin", 40*time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, id, claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	token, _, err := NewAccessToken(uuid.NewString(), "customer", time.Hour, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)

	expired, _, err := NewAccessToken(uuid.NewString(), "customer", -time.Minute, secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(expired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{Role: "admin"})
	signed, err := none.SignedString(secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(signed, secret)
	require.Error(t, err)
}
