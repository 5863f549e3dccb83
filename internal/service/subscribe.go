package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

const welcomeBody = `Thanks for subscribing to our newsletter.

You will be the first to hear about new prints, collections and offers.
`

type SubscribeService struct {
	Repo *repo.GormRepo
	Mail mailer.Notifier
}

func (s *SubscribeService) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	l := logging.FromContext(ctx).With("svc", "subscribe")

	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: Please enter your email address.", ErrValidation)
	}

	sub := &models.Subscriber{Email: email, SubscribedAt: time.Now().UTC()}
	if err := s.Repo.CreateSubscriberIfNotExists(ctx, sub); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: Email already subscribed.", ErrConflict)
		}
		l.Errorw("subscribe_error", "status", 500, "error", err)
		return nil, err
	}

	if s.Mail != nil {
		msg := mailer.Message{To: []string{email}, Subject: "Welcome to our newsletter", Body: welcomeBody}
		if err := s.Mail.Enqueue(ctx, msg); err != nil {
			l.Warnw("welcome_mail_error", "error", err)
		}
	}
	return sub, nil
}

// ExportCSV writes every subscriber as one CSV row.
func (s *SubscribeService) ExportCSV(ctx context.Context, w io.Writer) error {
	subs, err := s.Repo.ListSubscribers(ctx)
	if err != nil {
		return err
	}
	rows := make([]transport.SubscriberRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, transport.SubscriberRow{
			Email:        sub.Email,
			SubscribedAt: sub.SubscribedAt.UTC().Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(rows, w)
}
