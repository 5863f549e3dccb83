package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer admin"`
}

// UpdateUserRequest leaves nil fields untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"     validate:"omitempty,oneof=customer admin"`
}
