package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepo) CreateCheckout(ctx context.Context, c *models.Checkout) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) GetCheckout(ctx context.Context, id uuid.UUID) (*models.Checkout, error) {
	var c models.Checkout
	err := r.DB.WithContext(ctx).
		Preload("CheckoutItems", orderByPosition).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LockCheckout reads a checkout with a row lock; call it inside InTx.
func (r *GormRepo) LockCheckout(ctx context.Context, id uuid.UUID) (*models.Checkout, error) {
	var c models.Checkout
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("CheckoutItems", orderByPosition).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) UpdateCheckout(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.Checkout{}).Where("id = ?", id).Updates(fields).Error
}

// ClaimCheckout flips a paid, unfinalized checkout to finalized. It reports
// false when the checkout was not in that state, so of two concurrent
// callers only one can win.
func (r *GormRepo) ClaimCheckout(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Checkout{}).
		Where("id = ? AND is_paid = ? AND is_finalized = ?", id, true, false).
		Updates(map[string]any{
			"is_finalized": true,
			"finalized_at": at.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteStaleCheckouts removes unpaid checkouts created before the cutoff.
func (r *GormRepo) DeleteStaleCheckouts(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := r.InTx(ctx, func(tx *GormRepo) error {
		var ids []uuid.UUID
		if err := tx.DB.WithContext(ctx).Model(&models.Checkout{}).
			Where("is_paid = ? AND is_finalized = ? AND created_at < ?", false, false, before.UTC()).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.DB.WithContext(ctx).Where("checkout_id IN ?", ids).Delete(&models.CheckoutItem{}).Error; err != nil {
			return err
		}
		res := tx.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Checkout{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}
