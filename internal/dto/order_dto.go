package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlaceOrderRequest struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required"`
	CustomerAddress string `json:"customer_address" validate:"required"`
}

type OrderItemResponse struct {
	Id          uuid.UUID       `json:"id"`
	ProductId   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	Id              uuid.UUID            `json:"order_id"`
	OrderNumber     string               `json:"order_number"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerAddress string               `json:"customer_address"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	Items           []*OrderItemResponse `json:"items,omitempty"`
}

// OrderConfirmationMessage is the payload of the in-process order confirmation job.
type OrderConfirmationMessage struct {
	OrderId uuid.UUID `json:"order_id"`
}
