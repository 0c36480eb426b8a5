package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

// orderNumberLength is how many leading characters of the order id form the customer-facing number.
const orderNumberLength = 8

type Order struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	TotalAmount     decimal.Decimal
	Status          string
	CreatedAt       time.Time
	Items           []*OrderItem
}

type OrderItem struct {
	Id        uuid.UUID
	OrderId   uuid.UUID
	ProductId uuid.UUID
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	Product   *Product
}

// OrderNumber is the upper-cased first eight characters of the order id, e.g. "A1B2C3D4".
func OrderNumber(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:orderNumberLength])
}

func (o *Order) OrderNumber() string {
	return OrderNumber(o.Id)
}

// NewOrderItems captures each cart line's current price into an order line.
func NewOrderItems(orderId uuid.UUID, lines []*CartItem) []*OrderItem {
	items := make([]*OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, &OrderItem{
			OrderId:   orderId,
			ProductId: line.ProductId,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice(),
			Product:   line.Product,
		})
	}
	return items
}
