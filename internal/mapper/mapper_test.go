package mapper

import (
	"testing"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartMapper_JoinedProduct(t *testing.T) {
	m := NewCartMapper()
	product := &model.Product{Id: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("7.25"), Stock: 2}
	row := &model.CartItem{Id: uuid.New(), UserId: uuid.New(), ProductId: product.Id, Product: product, Quantity: 3}

	item := m.ToEntity(row)

	require.NotNil(t, item.Product)
	assert.Equal(t, "Mug", item.Product.Name)
	assert.Nil(t, item.UpdatedAt)
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("21.75")))

	back := m.ToModel(item)
	assert.Nil(t, back.Product)
	assert.Equal(t, row.ProductId, back.ProductId)
}

func TestCartMapper_MissingProduct(t *testing.T) {
	now := time.Now()
	item := NewCartMapper().ToEntity(&model.CartItem{Quantity: 1, UpdatedAt: now})

	assert.Nil(t, item.Product)
	require.NotNil(t, item.UpdatedAt)
	assert.True(t, item.UnitPrice().IsZero())
}

func TestOrderMapper_ToEntityWithItems(t *testing.T) {
	m := NewOrderMapper()
	orderId := uuid.New()
	row := &model.Order{
		Id:          orderId,
		TotalAmount: decimal.RequireFromString("12.00"),
		Status:      entity.OrderStatusPending,
		Items: []model.OrderItem{
			{Id: uuid.New(), OrderId: orderId, Quantity: 2, Price: decimal.RequireFromString("6.00")},
		},
	}

	order := m.ToEntity(row)

	require.Len(t, order.Items, 1)
	assert.Equal(t, orderId, order.Items[0].OrderId)
	assert.Nil(t, order.Items[0].Product)
	assert.Empty(t, m.ToModel(order).Items)
}
