package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/repository/memory"
	"storefront-be/pkg/events"
	pkgNats "storefront-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent chan *entity.Order
	err  error
}

func (m *recordingMailer) SendOrderConfirmation(order *entity.Order) error {
	m.sent <- order
	return m.err
}

func TestConsumerService_SendsConfirmationForQueuedOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newFakeStore()
	product := store.addProduct("10.00", 5)
	order := &entity.Order{
		Id:            uuid.New(),
		UserId:        uuid.New(),
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
		TotalAmount:   mustDecimal("20.00"),
		Status:        entity.OrderStatusPending,
	}
	store.state.orders = append(store.state.orders, order)
	store.state.orderItems = append(store.state.orderItems, &entity.OrderItem{
		Id: uuid.New(), OrderId: order.Id, ProductId: product.Id, Quantity: 2, Price: product.Price,
	})

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &recordingMailer{sent: make(chan *entity.Order, 1)}
	consumer := NewConsumerService(pubSub, "ORDER_CONFIRMATION", store, mail, nopLogger())
	require.NoError(t, consumer.Consume(ctx))

	payload, err := json.Marshal(dto.OrderConfirmationMessage{OrderId: order.Id})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService("ORDER_CONFIRMATION", pubSub).Publish(ctx, payload))

	select {
	case got := <-mail.sent:
		assert.Equal(t, order.Id, got.Id)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was not sent")
	}
}

func TestConsumerService_UnknownOrderIsSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newFakeStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &recordingMailer{sent: make(chan *entity.Order, 1)}
	require.NoError(t, NewConsumerService(pubSub, "ORDER_CONFIRMATION", store, mail, nopLogger()).Consume(ctx))

	payload, _ := json.Marshal(dto.OrderConfirmationMessage{OrderId: uuid.New()})
	require.NoError(t, NewPublisherService("ORDER_CONFIRMATION", pubSub).Publish(ctx, payload))

	select {
	case <-mail.sent:
		t.Fatal("no email expected for a missing order")
	case <-time.After(100 * time.Millisecond):
	}
}

type capturingSubscriber struct {
	eventType   string
	durableName string
	handler     pkgNats.EventHandler
	err         error
}

func (s *capturingSubscriber) Subscribe(ctx context.Context, eventType string, durableName string, handler pkgNats.EventHandler) error {
	s.eventType = eventType
	s.durableName = durableName
	s.handler = handler
	return s.err
}

func TestCatalogSyncService_InvalidatesOnCatalogUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addProduct("1.00", 3)
	catalog := NewCatalogService(store, memory.NewCatalogCache(time.Minute), nopLogger(), nil)

	sub := &capturingSubscriber{}
	require.NoError(t, NewCatalogSyncService(sub, catalog, "sync-test").Start(ctx))
	assert.Equal(t, events.CatalogUpdated, sub.eventType)
	assert.Equal(t, "sync-test", sub.durableName)
	require.NotNil(t, sub.handler)

	_, err := catalog.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	_, err = catalog.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls["products.find"])

	require.NoError(t, sub.handler(ctx, events.BaseEvent{Type: events.CatalogUpdated}))

	_, err = catalog.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls["products.find"])
}

func TestCatalogSyncService_SubscribeError(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store, memory.NoopCatalogCache{}, nopLogger(), nil)
	sub := &capturingSubscriber{err: errors.New("stream not found")}

	assert.Error(t, NewCatalogSyncService(sub, catalog, "sync-test").Start(context.Background()))
}
