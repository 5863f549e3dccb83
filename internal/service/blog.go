package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
)

type BlogService struct {
	Repo *repo.GormRepo
}

func (s *BlogService) List(ctx context.Context) ([]models.BlogPost, error) {
	return s.Repo.ListBlogPosts(ctx)
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	p, err := s.Repo.GetBlogPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "Blog post not found")
	}
	return p, nil
}

func applyBlogPost(p *models.BlogPost, req transport.BlogPostRequest) {
	if req.Title != nil {
		p.Title = deref(req.Title)
	}
	if req.Excerpt != nil {
		p.Excerpt = deref(req.Excerpt)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Author != nil {
		p.Author = deref(req.Author)
	}
	if req.Category != nil {
		p.Category = deref(req.Category)
	}
	if req.Image != nil {
		p.Image = deref(req.Image)
	}
}

func validateBlogPost(p *models.BlogPost) error {
	if p.Title == "" || p.Content == "" {
		return fmt.Errorf("%w: Title and content are required", ErrValidation)
	}
	return nil
}

func (s *BlogService) Create(ctx context.Context, author *models.User, req transport.BlogPostRequest) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	applyBlogPost(p, req)
	if p.Author == "" && author != nil {
		p.Author = author.Name
	}
	if err := validateBlogPost(p); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateBlogPost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req transport.BlogPostRequest) (*models.BlogPost, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBlogPost(p, req)
	if err := validateBlogPost(p); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveBlogPost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteBlogPost(ctx, id); err != nil {
		return notFound(err, "Blog post not found")
	}
	return nil
}
