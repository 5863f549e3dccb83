package repo

import (
	"context"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit("User").Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("OrderItems", orderByPosition).
		Preload("User", withOwner).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("OrderItems", orderByPosition).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("OrderItems", orderByPosition).
		Preload("User", withOwner).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrder(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.InTx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.WithContext(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.deleteByID(ctx, &models.Order{}, id)
	})
}
