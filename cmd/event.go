package cmd

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/events"
)

// registerEventHandlers attaches the audit log to every administrative event.
func registerEventHandlers(bus *events.EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		logger.InfoContext(ctx, "audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"user_id", internal.UserIDFromContext(ctx),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range events.SchemaEventTypes {
		bus.Subscribe(eventType, audit)
	}
}
