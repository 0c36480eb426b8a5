package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}

type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"

	// LowStockThreshold is the stock level below which a product is flagged "Only N left".
	LowStockThreshold = 10
)

type Product struct {
	Id          uuid.UUID
	CategoryId  uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	ImageUrl    string
	Stock       int
	Featured    bool
	CreatedAt   time.Time
}

func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockStatusOutOfStock
	case p.Stock < LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
