package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
}

type UpdateCartItemRequest struct {
	Id       uuid.UUID
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	Id        uuid.UUID        `json:"id"`
	ProductId uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	LineTotal decimal.Decimal  `json:"line_total"`
	Product   *ProductResponse `json:"product"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at"`
}

type CartResponse struct {
	Items     []*CartItemResponse `json:"items"`
	ItemCount int                 `json:"item_count"`
	Total     decimal.Decimal     `json:"total"`
}

// CartUpdatedMessage is pushed to every websocket connection of the session after a cart mutation.
type CartUpdatedMessage struct {
	Type string        `json:"type"`
	Cart *CartResponse `json:"cart,omitempty"`
}
