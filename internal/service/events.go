package service

import (
	"context"

	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

// publish sends an event and only logs a failure; events never fail the
// request that produced them.
func publish(ctx context.Context, p mykafka.Publisher, topic, key string, ev mykafka.Event) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warnw("publish_event_error", "topic", topic, "type", ev.Type, "error", err)
	}
}
