package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductResponse struct {
	Id          uuid.UUID       `json:"id"`
	CategoryId  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageUrl    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	StockStatus string          `json:"stock_status"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListProductsRequest is bound from the query string; both filters are optional.
type ListProductsRequest struct {
	CategoryId string `query:"category_id" validate:"omitempty,uuid"`
	Query      string `query:"q"`
}
