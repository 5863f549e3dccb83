package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/hash"
	"github.com/Skotchmaster/printshop/pkg/logging"
	"github.com/Skotchmaster/printshop/pkg/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    mykafka.Publisher
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) issue(u *models.User) (*transport.AuthResponse, error) {
	token, _, err := tokens.NewAccessToken(u.ID.String(), u.Role, s.TokenTTL, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &transport.AuthResponse{User: transport.NewUserView(u), Token: token}, nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: All fields are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Errorw("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warnw("register_error", "status", 400, "reason", "user already exists")
			return nil, fmt.Errorf("%w: User already exists", ErrConflict)
		}
		l.Errorw("register_error", "status", 500, "error", err)
		return nil, err
	}

	res, err := s.issue(user)
	if err != nil {
		l.Errorw("register_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(),
		mykafka.NewEvent(mykafka.EventUserRegistered, user.ID.String(), user.ID.String(), transport.NewUserView(user)))

	l.Infow("register_successful", "user_id", user.ID)
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warnw("login_failed", "status", 400, "reason", "unknown email")
			return nil, fmt.Errorf("%w: Invalid Email", ErrValidation)
		}
		l.Errorw("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warnw("login_failed", "status", 400, "reason", "password mismatch")
		return nil, fmt.Errorf("%w: Invalid Password", ErrValidation)
	}

	res, err := s.issue(user)
	if err != nil {
		l.Errorw("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}
	l.Infow("login_successful", "user_id", user.ID)
	return res, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, claims *tokens.AccessClaims) (*models.User, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		id, err = uuid.Parse(claims.Subject)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Not authorized, user not found", ErrNotFound)
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Not authorized, user not found")
	}
	return user, nil
}
