package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/internal/util"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

const (
	newArrivalsLimit = 8
	similarLimit     = 4
)

// ProductIndexer mirrors products into a full-text index.
type ProductIndexer interface {
	Upsert(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

type ProductService struct {
	Repo   *repo.GormRepo
	Index  ProductIndexer
	Events mykafka.Publisher
}

func (s *ProductService) List(ctx context.Context, q transport.ProductQuery) ([]models.Product, error) {
	f := repo.ProductFilter{
		Category:   strings.TrimSpace(q.Category),
		Collection: strings.TrimSpace(q.Collection),
		Sizes:      util.SplitList(q.Size),
		Colors:     util.SplitList(q.Color),
		MinPrice:   util.ParseFloat(q.MinPrice),
		MaxPrice:   util.ParseFloat(q.MaxPrice),
		Search:     q.Search,
		SortBy:     q.SortBy,
		Limit:      util.ParseIntDefault(q.Limit, 0),
	}
	return s.Repo.ListProducts(ctx, f)
}

func (s *ProductService) AdminList(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, repo.ProductFilter{})
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	return p, nil
}

func (s *ProductService) BestSeller(ctx context.Context) (*models.Product, error) {
	p, err := s.Repo.BestSeller(ctx)
	if err != nil {
		return nil, notFound(err, "No best seller found")
	}
	return p, nil
}

func (s *ProductService) NewArrivals(ctx context.Context) ([]models.Product, error) {
	return s.Repo.NewArrivals(ctx, newArrivalsLimit)
}

func (s *ProductService) Similar(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Repo.SimilarProducts(ctx, p, similarLimit)
}

// Search uses the full-text index when one is configured and falls back to
// a database match when there is none or it fails.
func (s *ProductService) Search(ctx context.Context, query string, page, size int) (*transport.ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "products.search")
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, size)

	if s.Index != nil {
		total, items, err := s.searchIndex(ctx, query, offset, limit)
		if err == nil {
			return productPage(items, total, page, offset, limit), nil
		}
		l.Warnw("search_index_error", "reason", "falling back to database", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	return productPage(items, total, page, offset, limit), nil
}

func (s *ProductService) searchIndex(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	total, ids, err := s.Index.Search(ctx, query, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	items, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func productPage(items []models.Product, total int64, page, offset, limit int) *transport.ProductPage {
	return &transport.ProductPage{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}
}

func applyProduct(p *models.Product, req transport.ProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.SKU != nil {
		p.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Collections != nil {
		p.Collections = strings.TrimSpace(*req.Collections)
	}
	if req.Sizes != nil {
		p.Sizes = models.UniqueStrings(req.Sizes)
	}
	if req.TextColors != nil {
		p.TextColors = models.UniqueStrings(req.TextColors)
	}
	if req.BaseColors != nil {
		p.BaseColors = models.UniqueStrings(req.BaseColors)
	}
	if req.Images != nil {
		p.Images = datatypes.JSONSlice[models.ProductImage](req.Images)
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	if req.MetaTitle != nil {
		p.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		p.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		p.MetaKeywords = *req.MetaKeywords
	}
}

func validateProduct(p *models.Product) error {
	if p.Name == "" || strings.TrimSpace(p.Description) == "" || p.SKU == "" || p.Category == "" {
		return fmt.Errorf("%w: Name, description, price, sku and category are required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: Price cannot be negative", ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req transport.ProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "products.create")

	if req.Price == nil {
		return nil, fmt.Errorf("%w: Name, description, price, sku and category are required", ErrValidation)
	}
	p := &models.Product{UserID: userID}
	applyProduct(p, req)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: Product with this SKU already exists", ErrConflict)
		}
		l.Errorw("create_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.sync(ctx, p, mykafka.EventProductCreated)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req transport.ProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "products.update", "product_id", id)

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProduct(p, req)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if req.SKU != nil {
		taken, err := s.Repo.SKUTaken(ctx, p.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: Product with this SKU already exists", ErrConflict)
		}
	}

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		l.Errorw("update_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.sync(ctx, p, mykafka.EventProductUpdated)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "Product not found")
	}

	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			logging.FromContext(ctx).Warnw("search_index_error", "op", "delete", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, id.String(),
		mykafka.NewEvent(mykafka.EventProductDeleted, id.String(), "", nil))
	return nil
}

// sync pushes a written product to the search index and the event stream.
func (s *ProductService) sync(ctx context.Context, p *models.Product, event string) {
	if s.Index != nil {
		if err := s.Index.Upsert(ctx, p); err != nil {
			logging.FromContext(ctx).Warnw("search_index_error", "op", "upsert", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, p.ID.String(),
		mykafka.NewEvent(event, p.ID.String(), p.UserID.String(), p))
}
