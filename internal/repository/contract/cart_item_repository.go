package contract

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CartItemRepository interface {
	// AddOrIncrement inserts the line with item.Quantity, or adds item.Quantity to the
	// existing (session, product) line. The stored row is written back into item.
	AddOrIncrement(ctx context.Context, item *entity.CartItem) error
	// UpdateQuantity and Delete are scoped to the session and report rows affected.
	UpdateQuantity(ctx context.Context, sessionId, id uuid.UUID, quantity int) (int64, error)
	Delete(ctx context.Context, sessionId, id uuid.UUID) (int64, error)
	DeleteAllBySession(ctx context.Context, sessionId uuid.UUID) error
	// DeleteLines removes only the given lines of the session; lines added since they were read stay.
	DeleteLines(ctx context.Context, sessionId uuid.UUID, ids []uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error)
}
