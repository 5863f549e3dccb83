package repo

import (
	"context"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
)

func (r *GormRepo) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListPortfolio(ctx context.Context) ([]models.Portfolio, error) {
	var items []models.Portfolio
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetPortfolio(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) SavePortfolio(ctx context.Context, p *models.Portfolio) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePortfolio(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Portfolio{}, id)
}

// CreateReview stores the review and refreshes the product's rating and
// review count in the same transaction.
func (r *GormRepo) CreateReview(ctx context.Context, rev *models.Review) error {
	return r.InTx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.WithContext(ctx).Create(rev).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.DB.WithContext(ctx).Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", rev.ProductID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.DB.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", rev.ProductID).
			Updates(map[string]any{"rating": agg.Avg, "num_reviews": agg.Count}).Error
	})
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var items []models.Review
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var items []models.Contact
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateSubscriberIfNotExists(ctx context.Context, s *models.Subscriber) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", s.Email).FirstOrCreate(s)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var items []models.Subscriber
	if err := r.DB.WithContext(ctx).Order("subscribed_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateBlogPost(ctx context.Context, p *models.BlogPost) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	var items []models.BlogPost
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetBlogPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) SaveBlogPost(ctx context.Context, p *models.BlogPost) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteBlogPost(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.BlogPost{}, id)
}
