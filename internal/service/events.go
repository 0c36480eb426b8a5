package service

import (
	"context"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/pkg/events"

	"github.com/google/uuid"
)

// IEventPublisher is satisfied by the NATS publisher.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// CartNotifier pushes a fresh cart to the session's live connections.
type CartNotifier interface {
	NotifyCartUpdated(sessionId uuid.UUID, cart *dto.CartResponse)
}

func newEvent(eventType string, data map[string]interface{}) events.BaseEvent {
	return events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
