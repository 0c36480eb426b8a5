package service

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCartService(store *fakeStore) (ICartService, *recordingNotifier, *recordingEventPublisher) {
	notifier := newRecordingNotifier()
	publisher := &recordingEventPublisher{}
	return NewCartService(store, notifier, publisher, nopLogger(), nil), notifier, publisher
}

func TestCartService_AddTwiceKeepsOneLine(t *testing.T) {
	store := newFakeStore()
	product := store.addProduct("10.00", 5)
	svc, notifier, _ := newTestCartService(store)
	session := uuid.New()

	_, err := svc.Add(context.Background(), session, &dto.AddCartItemRequest{ProductId: product.Id})
	require.NoError(t, err)
	cart, err := svc.Add(context.Background(), session, &dto.AddCartItemRequest{ProductId: product.Id})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.True(t, mustDecimal("20").Equal(cart.Total))
	assert.Equal(t, "10", cart.Items[0].Product.Price.String())
	assert.Equal(t, 2, notifier.count(session))
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestCartService(store)

	_, err := svc.Add(context.Background(), uuid.New(), &dto.AddCartItemRequest{ProductId: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, store.cartWrites)
}

func TestCartService_UpdateQuantityBelowOneIsNoop(t *testing.T) {
	store := newFakeStore()
	session := uuid.New()
	line := store.addCartLine(session, store.addProduct("4.00", 10), 3)
	svc, notifier, _ := newTestCartService(store)

	for _, qty := range []int{0, -2} {
		cart, err := svc.UpdateQuantity(context.Background(), session, &dto.UpdateCartItemRequest{Id: line.Id, Quantity: qty})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	}

	assert.Zero(t, store.cartWrites)
	assert.Zero(t, notifier.count(session))
}

func TestCartService_UpdateQuantity(t *testing.T) {
	store := newFakeStore()
	session := uuid.New()
	line := store.addCartLine(session, store.addProduct("2.50", 10), 1)
	svc, _, _ := newTestCartService(store)

	cart, err := svc.UpdateQuantity(context.Background(), session, &dto.UpdateCartItemRequest{Id: line.Id, Quantity: 4})

	require.NoError(t, err)
	assert.Equal(t, 4, cart.ItemCount)
	assert.True(t, mustDecimal("10").Equal(cart.Total))
}

func TestCartService_LinesAreScopedToSession(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()
	line := store.addCartLine(owner, store.addProduct("1.00", 10), 1)
	svc, _, _ := newTestCartService(store)
	intruder := uuid.New()

	_, err := svc.UpdateQuantity(context.Background(), intruder, &dto.UpdateCartItemRequest{Id: line.Id, Quantity: 9})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Remove(context.Background(), intruder, line.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	cart, err := svc.GetCart(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.GetCart(context.Background(), intruder)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_Remove(t *testing.T) {
	store := newFakeStore()
	session := uuid.New()
	first := store.addCartLine(session, store.addProduct("1.00", 10), 1)
	store.addCartLine(session, store.addProduct("3.00", 10), 2)
	svc, _, _ := newTestCartService(store)

	cart, err := svc.Remove(context.Background(), session, first.Id)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, mustDecimal("6").Equal(cart.Total))
}

func TestCartService_Clear(t *testing.T) {
	store := newFakeStore()
	session := uuid.New()
	other := uuid.New()
	store.addCartLine(session, store.addProduct("1.00", 10), 1)
	store.addCartLine(other, store.addProduct("2.00", 10), 1)
	svc, notifier, publisher := newTestCartService(store)

	require.NoError(t, svc.Clear(context.Background(), session))

	assert.Empty(t, store.cartOf(session))
	assert.Len(t, store.cartOf(other), 1)
	assert.Equal(t, 1, notifier.count(session))
	assert.Equal(t, []string{events.CartCleared}, publisher.types())
}

func TestCartService_FailedWriteSkipsRefresh(t *testing.T) {
	store := newFakeStore()
	product := store.addProduct("1.00", 10)
	store.fail["cart_items.upsert"] = errors.New("connection reset")
	svc, notifier, _ := newTestCartService(store)
	session := uuid.New()

	_, err := svc.Add(context.Background(), session, &dto.AddCartItemRequest{ProductId: product.Id})

	assert.Error(t, err)
	assert.Zero(t, store.calls["cart_items.find"])
	assert.Zero(t, notifier.count(session))
}

func TestCartService_MissingProductCountsAsZero(t *testing.T) {
	store := newFakeStore()
	session := uuid.New()
	store.addCartLine(session, store.addProduct("5.00", 10), 1)
	orphan := store.addProduct("7.00", 10)
	store.addCartLine(session, orphan, 3)
	store.state.products = store.state.products[:1]
	svc, _, _ := newTestCartService(store)

	cart, err := svc.GetCart(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 4, cart.ItemCount)
	assert.True(t, mustDecimal("5").Equal(cart.Total))
	assert.Nil(t, cart.Items[1].Product)
}
