package mapper

import (
	"storefront-be/internal/entity"
	"storefront-be/internal/model"
)

type OrderMapper struct {
	catalog *CatalogMapper
}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{catalog: NewCatalogMapper()}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}

	items := make([]*entity.OrderItem, len(o.Items))
	for i := range o.Items {
		items[i] = m.ItemToEntity(&o.Items[i])
	}

	return &entity.Order{
		Id:              o.Id,
		UserId:          o.UserId,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

// ToModel maps the order row only; items are inserted separately in bulk.
func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	return &model.Order{
		Id:              o.Id,
		UserId:          o.UserId,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(orders))
	for i, o := range orders {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

func (m *OrderMapper) ItemToEntity(i *model.OrderItem) *entity.OrderItem {
	if i == nil {
		return nil
	}
	return &entity.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ProductId: i.ProductId,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
		Product:   m.catalog.ProductToEntity(i.Product),
	}
}

func (m *OrderMapper) ItemToModel(i *entity.OrderItem) *model.OrderItem {
	if i == nil {
		return nil
	}
	return &model.OrderItem{
		Id:        i.Id,
		OrderId:   i.OrderId,
		ProductId: i.ProductId,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
	}
}

func (m *OrderMapper) ItemsToModels(items []*entity.OrderItem) []*model.OrderItem {
	models := make([]*model.OrderItem, len(items))
	for i, item := range items {
		models[i] = m.ItemToModel(item)
	}
	return models
}
