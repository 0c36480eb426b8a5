package service

import (
	"context"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/metrics"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/events"

	"github.com/google/uuid"
)

const cartModule = "CART"

type ICartService interface {
	GetCart(ctx context.Context, sessionId uuid.UUID) (*dto.CartResponse, error)
	Add(ctx context.Context, sessionId uuid.UUID, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionId uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	Remove(ctx context.Context, sessionId uuid.UUID, itemId uuid.UUID) (*dto.CartResponse, error)
	Clear(ctx context.Context, sessionId uuid.UUID) error
}

type cartService struct {
	uowFactory     unitofwork.RepositoryFactory
	notifier       CartNotifier
	eventPublisher IEventPublisher
	logger         logger.ILogger
	metrics        *metrics.Metrics
}

func NewCartService(
	uowFactory unitofwork.RepositoryFactory,
	notifier CartNotifier,
	eventPublisher IEventPublisher,
	logger logger.ILogger,
	metrics *metrics.Metrics,
) ICartService {
	return &cartService{
		uowFactory:     uowFactory,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		logger:         logger,
		metrics:        metrics,
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionId uuid.UUID) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := loadCartLines(ctx, uow, sessionId)
	if err != nil {
		s.logFailure("get", sessionId, err, nil)
		return nil, err
	}
	return toCartResponse(items), nil
}

func (s *cartService) Add(ctx context.Context, sessionId uuid.UUID, req *dto.AddCartItemRequest) (res *dto.CartResponse, err error) {
	defer func() { s.metrics.ObserveCart("add", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: req.ProductId})
	if err != nil {
		s.logFailure("add", sessionId, err, map[string]interface{}{"product_id": req.ProductId.String()})
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrNotFound
	}

	now := time.Now()
	item := entity.CartItem{
		Id:        uuid.New(),
		UserId:    sessionId,
		ProductId: req.ProductId,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if err = uow.CartItemRepository().AddOrIncrement(ctx, &item); err != nil {
		s.logFailure("add", sessionId, err, map[string]interface{}{"product_id": req.ProductId.String()})
		return nil, err
	}

	return s.refresh(ctx, uow, sessionId)
}

// UpdateQuantity treats a quantity below one as a no-op and returns the cart as it is.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionId uuid.UUID, req *dto.UpdateCartItemRequest) (res *dto.CartResponse, err error) {
	if req.Quantity < 1 {
		return s.GetCart(ctx, sessionId)
	}

	defer func() { s.metrics.ObserveCart("update_quantity", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.CartItemRepository().UpdateQuantity(ctx, sessionId, req.Id, req.Quantity)
	if err != nil {
		s.logFailure("update_quantity", sessionId, err, map[string]interface{}{"item_id": req.Id.String()})
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.ErrNotFound
	}

	return s.refresh(ctx, uow, sessionId)
}

func (s *cartService) Remove(ctx context.Context, sessionId uuid.UUID, itemId uuid.UUID) (res *dto.CartResponse, err error) {
	defer func() { s.metrics.ObserveCart("remove", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.CartItemRepository().Delete(ctx, sessionId, itemId)
	if err != nil {
		s.logFailure("remove", sessionId, err, map[string]interface{}{"item_id": itemId.String()})
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.ErrNotFound
	}

	return s.refresh(ctx, uow, sessionId)
}

func (s *cartService) Clear(ctx context.Context, sessionId uuid.UUID) (err error) {
	defer func() { s.metrics.ObserveCart("clear", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err = uow.CartItemRepository().DeleteAllBySession(ctx, sessionId); err != nil {
		s.logFailure("clear", sessionId, err, nil)
		return err
	}

	s.notify(sessionId, toCartResponse(nil))

	if s.eventPublisher != nil {
		evt := newEvent(events.CartCleared, map[string]interface{}{"session_id": sessionId.String()})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn(cartModule, "Failed to publish CART_CLEARED event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// refresh re-reads the cart after a successful write and pushes it to other tabs.
func (s *cartService) refresh(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*dto.CartResponse, error) {
	items, err := loadCartLines(ctx, uow, sessionId)
	if err != nil {
		s.logFailure("refresh", sessionId, err, nil)
		return nil, err
	}

	res := toCartResponse(items)
	s.notify(sessionId, res)
	return res, nil
}

func (s *cartService) notify(sessionId uuid.UUID, cart *dto.CartResponse) {
	if s.notifier != nil {
		s.notifier.NotifyCartUpdated(sessionId, cart)
	}
}

func (s *cartService) logFailure(op string, sessionId uuid.UUID, err error, extra map[string]interface{}) {
	details := map[string]interface{}{
		"operation":  op,
		"session_id": sessionId.String(),
		"error":      err.Error(),
	}
	for k, v := range extra {
		details[k] = v
	}
	s.logger.Error(cartModule, "Cart operation failed", details)
}

func loadCartLines(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]*entity.CartItem, error) {
	return uow.CartItemRepository().FindAll(ctx,
		specification.OwnedBySession{SessionID: sessionId},
		specification.Preload{Association: "Product"},
		specification.OrderBy{Field: "created_at"},
	)
}

func toCartResponse(items []*entity.CartItem) *dto.CartResponse {
	res := &dto.CartResponse{
		Items:     make([]*dto.CartItemResponse, 0, len(items)),
		ItemCount: entity.CartItemCount(items),
		Total:     entity.CartTotal(items),
	}
	for _, item := range items {
		res.Items = append(res.Items, &dto.CartItemResponse{
			Id:        item.Id,
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
			Product:   toProductResponse(item.Product),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return res
}
