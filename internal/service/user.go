package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/hash"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

// UserService backs the admin user screens.
type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) Create(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create")

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: All fields are required", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: Invalid role", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Errorw("create_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: User already exists", ErrConflict)
		}
		l.Errorw("create_user_error", "status", 500, "error", err)
		return nil, err
	}
	l.Infow("user_created", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := normalizeEmail(*req.Email)
		taken, err := s.Repo.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: User already exists", ErrConflict)
		}
		user.Email = email
	}
	if req.Password != nil && *req.Password != "" {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}
	if req.Role != nil && *req.Role != "" {
		if !models.ValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: Invalid role", ErrValidation)
		}
		user.Role = *req.Role
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		l.Errorw("update_user_error", "status", 500, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return notFound(err, "User not found")
	}
	return nil
}
