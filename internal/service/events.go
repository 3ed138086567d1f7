package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/mykafka"
)

// publish never fails the caller: the event stream is best effort.
func publish(ctx context.Context, p mykafka.Publisher, topic string, userID int, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, strconv.Itoa(userID), event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
