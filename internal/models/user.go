package models

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	Base
	Name         string `gorm:"not null"             json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null"             json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
