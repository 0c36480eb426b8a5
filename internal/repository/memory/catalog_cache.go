package memory

import (
	"context"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const (
	categoriesKey = "catalog:categories"
	productsKey   = "catalog:products"
)

// CatalogCache keeps the catalog in process memory. Each instance has its own copy;
// use the redis backend when several instances must agree.
type CatalogCache struct {
	cache *cache.Cache
}

var _ contract.CatalogCache = (*CatalogCache)(nil)

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *CatalogCache) GetCategories(ctx context.Context) ([]*entity.Category, bool, error) {
	if x, found := r.cache.Get(categoriesKey); found {
		return x.([]*entity.Category), true, nil
	}
	return nil, false, nil
}

func (r *CatalogCache) SetCategories(ctx context.Context, categories []*entity.Category) error {
	r.cache.Set(categoriesKey, categories, cache.DefaultExpiration)
	return nil
}

func (r *CatalogCache) GetProducts(ctx context.Context) ([]*entity.Product, bool, error) {
	if x, found := r.cache.Get(productsKey); found {
		return x.([]*entity.Product), true, nil
	}
	return nil, false, nil
}

func (r *CatalogCache) SetProducts(ctx context.Context, products []*entity.Product) error {
	r.cache.Set(productsKey, products, cache.DefaultExpiration)
	return nil
}

func (r *CatalogCache) Invalidate(ctx context.Context) error {
	r.cache.Delete(categoriesKey)
	r.cache.Delete(productsKey)
	return nil
}

// NoopCatalogCache never hits; every read goes to the database.
type NoopCatalogCache struct{}

var _ contract.CatalogCache = NoopCatalogCache{}

func (NoopCatalogCache) GetCategories(ctx context.Context) ([]*entity.Category, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetCategories(ctx context.Context, categories []*entity.Category) error {
	return nil
}

func (NoopCatalogCache) GetProducts(ctx context.Context) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetProducts(ctx context.Context, products []*entity.Product) error {
	return nil
}

func (NoopCatalogCache) Invalidate(ctx context.Context) error {
	return nil
}
