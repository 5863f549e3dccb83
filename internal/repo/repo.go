package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAlreadyExists = errors.New("already exists")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

// InTx runs fn against a repo bound to a single transaction.
func (r *GormRepo) InTx(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) deleteByID(ctx context.Context, model any, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
