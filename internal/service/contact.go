package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type ContactService struct {
	Repo       *repo.GormRepo
	Mail       mailer.Notifier
	AdminEmail string
}

func (s *ContactService) Create(ctx context.Context, req transport.ContactRequest) (*models.Contact, error) {
	l := logging.FromContext(ctx).With("svc", "contact.create")

	c := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Number:  strings.TrimSpace(req.Number),
		Message: strings.TrimSpace(req.Message),
	}
	if c.Name == "" || c.Email == "" || c.Number == "" || c.Message == "" {
		return nil, fmt.Errorf("%w: All fields are required", ErrValidation)
	}

	if err := s.Repo.CreateContact(ctx, c); err != nil {
		l.Errorw("create_contact_error", "status", 500, "error", err)
		return nil, err
	}

	if s.Mail != nil && s.AdminEmail != "" {
		msg := mailer.Message{
			To:      []string{s.AdminEmail},
			Subject: "New contact request from " + c.Name,
			Body: fmt.Sprintf("Name: %s\nEmail: %s\nNumber: %s\n\n%s\n",
				c.Name, c.Email, c.Number, c.Message),
		}
		if err := s.Mail.Enqueue(ctx, msg); err != nil {
			l.Warnw("contact_notify_error", "error", err)
		}
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.Repo.ListContacts(ctx)
}
