package unitofwork

import (
	"context"

	"storefront-be/internal/repository/contract"
)

// UnitOfWork hands out repositories bound either to the plain connection or,
// between Begin and Commit/Rollback, to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CategoryRepository() contract.CategoryRepository
	ProductRepository() contract.ProductRepository
	CartItemRepository() contract.CartItemRepository
	OrderRepository() contract.OrderRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
