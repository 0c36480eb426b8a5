package mapper

import (
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
)

type CartMapper struct {
	catalog *CatalogMapper
}

func NewCartMapper() *CartMapper {
	return &CartMapper{catalog: NewCatalogMapper()}
}

func (m *CartMapper) ToEntity(c *model.CartItem) *entity.CartItem {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.CartItem{
		Id:        c.Id,
		UserId:    c.UserId,
		ProductId: c.ProductId,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		Product:   m.catalog.ProductToEntity(c.Product),
	}
}

// ToModel never carries the joined product; writes only touch cart_items.
func (m *CartMapper) ToModel(c *entity.CartItem) *model.CartItem {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.CartItem{
		Id:        c.Id,
		UserId:    c.UserId,
		ProductId: c.ProductId,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CartMapper) ToEntities(items []*model.CartItem) []*entity.CartItem {
	entities := make([]*entity.CartItem, len(items))
	for i, c := range items {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
