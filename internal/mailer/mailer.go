// Package mailer sends plain text mail through SMTP on a bounded worker pool
// so request handlers never wait on the mail server.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"gopkg.in/gomail.v2"

	"github.com/Skotchmaster/printshop/pkg/logging"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Notifier queues a message for delivery.
type Notifier interface {
	Enqueue(ctx context.Context, msg Message) error
}

// ErrDropped is returned when every worker is busy and the message was not
// queued.
var ErrDropped = errors.New("mailer: all workers busy, message dropped")

type sendFunc func(m *gomail.Message) error

type Dispatcher struct {
	pool *ants.Pool
	from string
	send sendFunc
}

func New(cfg Config, workers int) (*Dispatcher, error) {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return newDispatcher(cfg.From, workers, func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	})
}

func newDispatcher(from string, workers int, send sendFunc) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("mailer: pool: %w", err)
	}
	return &Dispatcher{
		pool: pool,
		from: from,
		send: send,
	}, nil
}

func (d *Dispatcher) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}

// Enqueue hands the message to an idle worker and returns at once. Delivery
// errors are logged, not returned. When no worker is free the message is
// dropped and ErrDropped is returned.
func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	l := logging.FromContext(ctx).With("component", "mailer", "subject", msg.Subject)
	m := d.build(msg)
	err := d.pool.Submit(func() {
		if err := d.send(m); err != nil {
			l.Errorw("mail_send_error", "to", msg.To, "error", err)
			return
		}
		l.Infow("mail_sent", "to", msg.To)
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		l.Warnw("mail_dropped", "to", msg.To, "running", d.pool.Running())
		return fmt.Errorf("%w: %w", ErrDropped, err)
	}
	return err
}

// Close waits up to timeout for in-flight mail and stops the workers.
func (d *Dispatcher) Close(timeout time.Duration) error {
	return d.pool.ReleaseTimeout(timeout)
}

// Nop discards every message; used when SMTP is not configured.
type Nop struct{}

func (Nop) Enqueue(context.Context, Message) error { return nil }
