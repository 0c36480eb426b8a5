package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOrderID struct {
	OrderID uuid.UUID
}

func (s ByOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

// CatalogListingOrder puts featured products first, newest first within each group.
type CatalogListingOrder struct{}

func (s CatalogListingOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("featured DESC").Order("created_at DESC")
}
