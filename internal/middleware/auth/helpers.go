package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/pkg/tokens"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

const (
	msgNoToken      = "Not authorized, no token"
	msgTokenFailed  = "Not authorized, token failed"
	msgUserNotFound = "Not authorized, user not found"
	msgNotAdmin     = "Not authorized as an admin"
)

// UserLoader resolves verified token claims to a stored user.
type UserLoader interface {
	Authenticate(ctx context.Context, claims *tokens.AccessClaims) (*models.User, error)
}

type Middleware struct {
	Secret []byte
	Users  UserLoader
}

func hasBearer(c echo.Context) bool {
	h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	return len(h) > len("Bearer ") && strings.EqualFold(h[:len("Bearer ")], "Bearer ")
}

func (m *Middleware) jwt(optional bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.Secret,
		SigningMethod: "HS256",
		ContextKey:    tokenKey,
		TokenLookup:   "header:Authorization:Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(tokens.AccessClaims)
		},
		ContinueOnIgnoredError: optional,
		ErrorHandler: func(c echo.Context, err error) error {
			if !hasBearer(c) {
				if optional {
					return nil
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken).SetInternal(err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed).SetInternal(err)
		},
	})
}

func claimsFrom(c echo.Context) (*tokens.AccessClaims, bool) {
	token, ok := c.Get(tokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*tokens.AccessClaims)
	return claims, ok
}

// CurrentUser returns the user loaded by Protect or Optional, or nil.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
