package service

import (
	"context"

	"storefront-be/pkg/events"
	pkgNats "storefront-be/pkg/nats"
)

// IEventSubscriber is satisfied by the NATS subscriber.
type IEventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, durableName string, handler pkgNats.EventHandler) error
}

type ICatalogSyncService interface {
	Start(ctx context.Context) error
}

// catalogSyncService drops the cached catalog when products or categories change elsewhere.
// Each instance with an in-process cache needs its own durable name, otherwise JetStream
// hands every event to only one of them.
type catalogSyncService struct {
	subscriber     IEventSubscriber
	catalogService ICatalogService
	durableName    string
}

func NewCatalogSyncService(subscriber IEventSubscriber, catalogService ICatalogService, durableName string) ICatalogSyncService {
	return &catalogSyncService{
		subscriber:     subscriber,
		catalogService: catalogService,
		durableName:    durableName,
	}
}

func (s *catalogSyncService) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, events.CatalogUpdated, s.durableName, s.handle)
}

func (s *catalogSyncService) handle(ctx context.Context, _ events.Event) error {
	return s.catalogService.InvalidateCache(ctx)
}
