package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ProductId uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt *time.Time

	// Product is the joined snapshot; nil when the product row could not be loaded.
	Product *Product
}

// UnitPrice is the current product price, zero when the product snapshot is missing.
func (c *CartItem) UnitPrice() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price
}

func (c *CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func CartItemCount(items []*CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
