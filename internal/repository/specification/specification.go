package specification

import "gorm.io/gorm"

// Specification narrows or shapes a repository query: a filter, an ordering or a preload.
// Repositories apply them in the order given.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
