package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SortPriceAsc   = "priceAsc"
	SortPriceDesc  = "priceDesc"
	SortPopularity = "popularity"
)

type ProductFilter struct {
	Category   string
	Collection string
	Sizes      []string
	Colors     []string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	SortBy     string
	Limit      int
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" && !strings.EqualFold(f.Category, "all") {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.Collection != "" && !strings.EqualFold(f.Collection, "all") {
		q = q.Where("LOWER(collections) = ?", strings.ToLower(f.Collection))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if strings.TrimSpace(f.Search) != "" {
		p := likePattern(f.Search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", p, p)
	}

	switch f.SortBy {
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	case SortPopularity:
		q = q.Order("rating DESC").Order("num_reviews DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}

	// array columns differ between dialects, so set filters run here
	out := items[:0]
	for _, p := range items {
		if len(f.Sizes) > 0 && !p.Sizes.ContainsAny(f.Sizes...) {
			continue
		}
		if len(f.Colors) > 0 && !p.TextColors.ContainsAny(f.Colors...) && !p.BaseColors.ContainsAny(f.Colors...) {
			continue
		}
		out = append(out, p)
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) BestSeller(ctx context.Context) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Order("rating DESC").
		Order("num_reviews DESC").
		Order("created_at DESC").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SimilarProducts(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("id <> ? AND category = ?", p.ID, p.Category).
		Order("rating DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SKUTaken(ctx context.Context, sku string, except uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("sku = ? AND id <> ?", sku, except).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	tx := r.DB.WithContext(ctx).Where("sku = ?", prod.SKU).FirstOrCreate(prod)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Product{}, id)
}

func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	p := likePattern(q)
	where := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", p, p)

	var total int64
	if err := where.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := where.Session(&gorm.Session{}).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) DeleteAllProducts(ctx context.Context) error {
	return r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error
}

// GetProductsByIDs returns the products in the order of ids, skipping ids
// that no longer exist.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var found []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
