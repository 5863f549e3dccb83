package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/printshop/pkg/logging"
)

const publishTimeout = 5 * time.Second

// Publisher is what services publish domain events through.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Producer struct {
	writer  *kafka.Writer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewProducer(brokers []string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: w, timeout: publishTimeout}
}

// PublishEvent encodes the event and writes it in the background, detached
// from the caller's cancellation. Only encoding errors are returned; write
// failures are logged with the logger carried by ctx.
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}
	l := logging.FromContext(ctx).With("component", "kafka", "topic", topic, "key", key)
	bg := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		wctx, cancel := context.WithTimeout(bg, p.timeout)
		defer cancel()
		if err := p.writer.WriteMessages(wctx, msg); err != nil {
			l.Warnw("publish_event_error", "error", err)
		}
	}()
	return nil
}

// Close waits for in-flight writes and closes the writer.
func (p *Producer) Close() error {
	p.wg.Wait()
	return p.writer.Close()
}

// Nop drops every event; used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
