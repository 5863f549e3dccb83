package repo

import (
	"context"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, except).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.User{}, id)
}

func (r *GormRepo) DeleteAllUsers(ctx context.Context) error {
	return r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error
}
