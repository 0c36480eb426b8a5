package contract

import (
	"context"

	"storefront-be/internal/entity"
)

// CatalogCache holds the last fully loaded, already ordered catalog collections.
// A miss is reported as (nil, false, nil); errors are backend failures.
type CatalogCache interface {
	GetCategories(ctx context.Context) ([]*entity.Category, bool, error)
	SetCategories(ctx context.Context, categories []*entity.Category) error
	GetProducts(ctx context.Context) ([]*entity.Product, bool, error)
	SetProducts(ctx context.Context, products []*entity.Product) error
	Invalidate(ctx context.Context) error
}
