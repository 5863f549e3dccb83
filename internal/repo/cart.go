package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartOwner identifies a cart by user or, for anonymous shoppers, by guest id.
type CartOwner struct {
	UserID  *uuid.UUID
	GuestID string
}

func (o CartOwner) scope(db *gorm.DB) *gorm.DB {
	if o.UserID != nil {
		return db.Where("user_id = ?", *o.UserID)
	}
	return db.Where("guest_id = ? AND user_id IS NULL", o.GuestID)
}

func (r *GormRepo) GetCart(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	var cart models.Cart
	err := owner.scope(r.DB.WithContext(ctx)).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) lockCart(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	var cart models.Cart
	err := owner.scope(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// MutateCart loads the owner's cart under a row lock, applies fn to it and
// persists the resulting lines and total. A missing cart is created when
// create is set, otherwise gorm.ErrRecordNotFound is returned.
func (r *GormRepo) MutateCart(ctx context.Context, owner CartOwner, create bool, fn func(cart *models.Cart) error) (*models.Cart, error) {
	var out *models.Cart
	err := r.InTx(ctx, func(tx *GormRepo) error {
		cart, err := tx.lockCart(ctx, owner)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) || !create {
				return err
			}
			// a concurrent first add may win the insert; either way the
			// single row is locked and re-read below
			fresh := &models.Cart{UserID: owner.UserID, GuestID: owner.GuestID}
			err := tx.DB.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Omit(clause.Associations).
				Create(fresh).Error
			if err != nil {
				return err
			}
			if cart, err = tx.lockCart(ctx, owner); err != nil {
				return err
			}
		}

		if err := fn(cart); err != nil {
			return err
		}

		if err := tx.replaceCartLines(ctx, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) replaceCartLines(ctx context.Context, cart *models.Cart) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	for i := range cart.Products {
		cart.Products[i].ID = uuid.Nil
		cart.Products[i].CartID = cart.ID
		cart.Products[i].Position = i
	}
	if len(cart.Products) > 0 {
		if err := db.Create(&cart.Products).Error; err != nil {
			return err
		}
	}
	cart.Recalculate()
	return db.Model(cart).Omit(clause.Associations).Updates(map[string]any{
		"total_price": cart.TotalPrice,
		"guest_id":    cart.GuestID,
		"user_id":     cart.UserID,
		"updated_at":  time.Now().UTC(),
	}).Error
}

// MergeGuestCart moves every line of the guest cart into the user's cart and
// removes the guest cart.
func (r *GormRepo) MergeGuestCart(ctx context.Context, guestID string, userID uuid.UUID, merge func(dst, src *models.Cart)) (*models.Cart, error) {
	var out *models.Cart
	err := r.InTx(ctx, func(tx *GormRepo) error {
		guest, err := tx.lockCart(ctx, CartOwner{GuestID: guestID})
		if err != nil {
			return err
		}

		userCart, err := tx.lockCart(ctx, CartOwner{UserID: &userID})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// adopt the guest cart as the user's cart
			guest.UserID = &userID
			guest.GuestID = ""
			if err := tx.replaceCartLines(ctx, guest); err != nil {
				return err
			}
			out = guest
			return nil
		}
		if err != nil {
			return err
		}

		merge(userCart, guest)
		if err := tx.replaceCartLines(ctx, userCart); err != nil {
			return err
		}
		if err := tx.deleteCarts(ctx, []uuid.UUID{guest.ID}); err != nil {
			return err
		}
		out = userCart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) deleteCarts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.DB.WithContext(ctx)
	if err := db.Where("cart_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&models.Cart{}).Error
}

func (r *GormRepo) DeleteUserCart(ctx context.Context, userID uuid.UUID) error {
	var ids []uuid.UUID
	if err := r.DB.WithContext(ctx).Model(&models.Cart{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	return r.deleteCarts(ctx, ids)
}

func (r *GormRepo) DeleteStaleGuestCarts(ctx context.Context, before time.Time) (int64, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("user_id IS NULL AND updated_at < ?", before.UTC()).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if err := r.deleteCarts(ctx, ids); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (r *GormRepo) DeleteAllCarts(ctx context.Context) error {
	db := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Cart{}).Error
}
