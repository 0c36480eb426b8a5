package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey = "storefront:catalog:categories"
	productsKey   = "storefront:catalog:products"
)

// CatalogCache shares one catalog snapshot between all service instances.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.CatalogCache = (*CatalogCache)(nil)

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func (c *CatalogCache) GetCategories(ctx context.Context) ([]*entity.Category, bool, error) {
	var categories []*entity.Category
	found, err := c.get(ctx, categoriesKey, &categories)
	if err != nil || !found {
		return nil, false, err
	}
	return categories, true, nil
}

func (c *CatalogCache) SetCategories(ctx context.Context, categories []*entity.Category) error {
	return c.set(ctx, categoriesKey, categories)
}

func (c *CatalogCache) GetProducts(ctx context.Context) ([]*entity.Product, bool, error) {
	var products []*entity.Product
	found, err := c.get(ctx, productsKey, &products)
	if err != nil || !found {
		return nil, false, err
	}
	return products, true, nil
}

func (c *CatalogCache) SetProducts(ctx context.Context, products []*entity.Product) error {
	return c.set(ctx, productsKey, products)
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, categoriesKey, productsKey).Err()
}

func (c *CatalogCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A value written by an older build is treated as a miss and overwritten on reload.
		return false, nil
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
