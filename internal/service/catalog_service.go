package service

import (
	"context"
	"strings"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/metrics"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const catalogModule = "CATALOG"

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	CategoryId *uuid.UUID
	Query      string
}

type ICatalogService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	InvalidateCache(ctx context.Context) error
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      contract.CatalogCache
	logger     logger.ILogger
	metrics    *metrics.Metrics
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	cache contract.CatalogCache,
	logger logger.ILogger,
	metrics *metrics.Metrics,
) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, &dto.CategoryResponse{
			Id:          c.Id,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		})
	}
	return res, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]*dto.ProductResponse, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterProducts(products, filter)
	res := make([]*dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		s.logger.Error(catalogModule, "Failed to load product", map[string]interface{}{
			"product_id": id.String(),
			"error":      err.Error(),
		})
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrNotFound
	}
	return toProductResponse(product), nil
}

func (s *catalogService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn(catalogModule, "Failed to invalidate catalog cache", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Info(catalogModule, "Catalog cache invalidated", nil)
	return nil
}

// loadCategories serves from cache when possible. A failed load returns the error and
// leaves whatever is cached untouched.
func (s *catalogService) loadCategories(ctx context.Context) ([]*entity.Category, error) {
	if cached, ok := s.cacheGetCategories(ctx); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.CategoryRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		s.logger.Error(catalogModule, "Failed to load categories", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		s.logger.Warn(catalogModule, "Failed to cache categories", map[string]interface{}{"error": err.Error()})
	}
	return categories, nil
}

func (s *catalogService) loadProducts(ctx context.Context) ([]*entity.Product, error) {
	if cached, ok := s.cacheGetProducts(ctx); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.CatalogListingOrder{})
	if err != nil {
		s.logger.Error(catalogModule, "Failed to load products", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := s.cache.SetProducts(ctx, products); err != nil {
		s.logger.Warn(catalogModule, "Failed to cache products", map[string]interface{}{"error": err.Error()})
	}
	return products, nil
}

func (s *catalogService) cacheGetCategories(ctx context.Context) ([]*entity.Category, bool) {
	cached, ok, err := s.cache.GetCategories(ctx)
	if err != nil {
		s.logger.Warn(catalogModule, "Catalog cache read failed", map[string]interface{}{"error": err.Error()})
	}
	s.observeCache(ok)
	return cached, ok
}

func (s *catalogService) cacheGetProducts(ctx context.Context) ([]*entity.Product, bool) {
	cached, ok, err := s.cache.GetProducts(ctx)
	if err != nil {
		s.logger.Warn(catalogModule, "Catalog cache read failed", map[string]interface{}{"error": err.Error()})
	}
	s.observeCache(ok)
	return cached, ok
}

func (s *catalogService) observeCache(hit bool) {
	if hit {
		s.metrics.CacheHit()
	} else {
		s.metrics.CacheMiss()
	}
}

// FilterProducts keeps the input order and returns products matching every set criterion:
// exact category, and a case-insensitive substring of name or description.
func FilterProducts(products []*entity.Product, filter ProductFilter) []*entity.Product {
	query := strings.ToLower(filter.Query)

	result := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryId != nil && p.CategoryId != *filter.CategoryId {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Id:          p.Id,
		CategoryId:  p.CategoryId,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
		Stock:       p.Stock,
		StockStatus: string(p.StockStatus()),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}
