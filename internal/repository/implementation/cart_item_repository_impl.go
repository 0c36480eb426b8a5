package implementation

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/mapper"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CartMapper
}

func NewCartItemRepository(db *gorm.DB) contract.CartItemRepository {
	return &CartItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewCartMapper(),
	}
}

// AddOrIncrement is a single INSERT ... ON CONFLICT (user_id, product_id) DO UPDATE,
// so there is no read-then-branch window for a second line to slip in.
func (r *CartItemRepositoryImpl) AddOrIncrement(ctx context.Context, item *entity.CartItem) error {
	m := r.mapper.ToModel(item)
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
				DoUpdates: clause.Set{
					{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_items.quantity + EXCLUDED.quantity")},
					{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("EXCLUDED.updated_at")},
				},
			},
			clause.Returning{},
		).
		Create(m).Error
	if err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *CartItemRepositoryImpl) UpdateQuantity(ctx context.Context, sessionId, id uuid.UUID, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", id, sessionId).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (r *CartItemRepositoryImpl) Delete(ctx context.Context, sessionId, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, sessionId).
		Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartItemRepositoryImpl) DeleteAllBySession(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", sessionId).Delete(&model.CartItem{}).Error
}

func (r *CartItemRepositoryImpl) DeleteLines(ctx context.Context, sessionId uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", sessionId, ids).
		Delete(&model.CartItem{}).Error
}

func (r *CartItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error) {
	var models []*model.CartItem
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
