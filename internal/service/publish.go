package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/logging"
)

const publishTimeout = 5 * time.Second

// publish is best-effort: a failed event never fails the request.
func publish(ctx context.Context, p events.Publisher, topic string, key any, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
