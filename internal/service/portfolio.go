package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
)

type PortfolioService struct {
	Repo *repo.GormRepo
}

func (s *PortfolioService) List(ctx context.Context) ([]models.Portfolio, error) {
	return s.Repo.ListPortfolio(ctx)
}

func (s *PortfolioService) Get(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	p, err := s.Repo.GetPortfolio(ctx, id)
	if err != nil {
		return nil, notFound(err, "Portfolio not found")
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func (s *PortfolioService) Create(ctx context.Context, req transport.PortfolioRequest) (*models.Portfolio, error) {
	p := &models.Portfolio{
		Name:        deref(req.Name),
		Description: deref(req.Description),
		Category:    deref(req.Category),
		Images:      models.UniqueStrings(req.Images),
	}
	if p.Name == "" || p.Description == "" || p.Category == "" || len(p.Images) == 0 {
		return nil, fmt.Errorf("%w: All fields are required, including images", ErrValidation)
	}
	if err := s.Repo.CreatePortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) Update(ctx context.Context, id uuid.UUID, req transport.PortfolioRequest) (*models.Portfolio, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := deref(req.Name); v != "" {
		p.Name = v
	}
	if v := deref(req.Description); v != "" {
		p.Description = v
	}
	if v := deref(req.Category); v != "" {
		p.Category = v
	}
	if imgs := models.UniqueStrings(req.Images); len(imgs) > 0 {
		p.Images = imgs
	}
	if err := s.Repo.SavePortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeletePortfolio(ctx, id); err != nil {
		return notFound(err, "Portfolio not found")
	}
	return nil
}
