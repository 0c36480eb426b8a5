package bootstrap

import (
	"strings"
	"testing"

	"storefront-be/internal/config"
	"storefront-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func TestCatalogSyncDurable(t *testing.T) {
	shared := &config.Config{Cache: config.CacheConfig{Backend: "redis"}}
	assert.Equal(t, "storefront-catalog-sync", catalogSyncDurable(shared))

	local := &config.Config{Cache: config.CacheConfig{Backend: "memory"}}
	assert.True(t, strings.HasPrefix(catalogSyncDurable(local), "storefront-catalog-sync-"))
}

func TestNewCatalogCache(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: "none"}}
	assert.IsType(t, memory.NoopCatalogCache{}, newCatalogCache(cfg, nil))

	cfg.Cache.Backend = "memory"
	assert.IsType(t, &memory.CatalogCache{}, newCatalogCache(cfg, nil))

	// redis without a live client falls back to process memory
	cfg.Cache.Backend = "redis"
	assert.IsType(t, &memory.CatalogCache{}, newCatalogCache(cfg, nil))
}
