package mykafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Skotchmaster/printshop/pkg/logging"
)

func TestProducer_PublishDoesNotWaitForBroker(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx, cancel := context.WithCancel(logging.IntoContext(context.Background(), zap.New(core).Sugar()))
	defer cancel()

	p := NewProducer([]string{"127.0.0.1:1"})
	p.timeout = 300 * time.Millisecond

	start := time.Now()
	err := p.PublishEvent(ctx, "orders", "order-1", map[string]string{"type": "order.created"})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 100*time.Millisecond)

	_ = p.Close()
	require.Equal(t, 1, logs.FilterMessage("publish_event_error").Len())
}

func TestProducer_RejectsUnencodableEvent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	defer func() { _ = p.Close() }()

	err := p.PublishEvent(context.Background(), "orders", "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}
