// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"log/slog"
	"time"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/service"

	"github.com/google/uuid"
)

// newDomainEvent builds the envelope shared by all ledger events.
func newDomainEvent(eventType service.EventType, actor entity.Identity) *service.DomainEvent {
	return &service.DomainEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Actor:      actor.String(),
	}
}

// publishEvent sends one event after a successful state change. The change is
// already committed at this point, so a publish failure is logged and the
// call still succeeds.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.DomainEvent) {
	if err := publisher.PublishDomainEvent(ctx, event); err != nil {
		logger.Error("failed to publish domain event",
			slog.String("event_id", event.EventID),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
}
