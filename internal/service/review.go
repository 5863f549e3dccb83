package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

type ReviewSummary struct {
	Count         int             `json:"count"`
	AverageRating float64         `json:"averageRating"`
	Reviews       []models.Review `json:"reviews"`
}

func (s *ReviewService) Create(ctx context.Context, req transport.ReviewRequest) (*models.Review, error) {
	r := &models.Review{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Feedback:  strings.TrimSpace(req.Feedback),
		UserName:  strings.TrimSpace(req.UserName),
		Email:     normalizeEmail(req.Email),
	}
	if r.ProductID == uuid.Nil || r.Rating == 0 || r.Feedback == "" || r.UserName == "" || r.Email == "" {
		return nil, fmt.Errorf("%w: All fields are required", ErrValidation)
	}
	if r.Rating < models.MinRating || r.Rating > models.MaxRating {
		return nil, fmt.Errorf("%w: Rating must be between %.1f and %d", ErrValidation, models.MinRating, models.MaxRating)
	}

	if _, err := s.Repo.GetProduct(ctx, r.ProductID); err != nil {
		return nil, notFound(err, "Product not found")
	}
	if err := s.Repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ForProduct lists reviews newest first with their mean rating rounded to
// one decimal.
func (s *ReviewService) ForProduct(ctx context.Context, productID uuid.UUID) (*ReviewSummary, error) {
	reviews, err := s.Repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{
		Count:         len(reviews),
		AverageRating: averageRating(reviews),
		Reviews:       reviews,
	}, nil
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(sum/float64(len(reviews))*10) / 10
}
