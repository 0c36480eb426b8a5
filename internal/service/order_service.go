package service

import (
	"context"
	"encoding/json"
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

const orderModule = "ORDER"

// Steps of one placement attempt, reported when it fails.
const (
	stepLoadCart    = "load_cart"
	stepBegin       = "begin"
	stepInsertOrder = "insert_order"
	stepInsertItems = "insert_items"
	stepClearCart   = "clear_cart"
	stepCommit      = "commit"
)

type IOrderService interface {
	PlaceOrder(ctx context.Context, sessionId uuid.UUID, req *dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, sessionId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, sessionId uuid.UUID) ([]*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory       unitofwork.RepositoryFactory
	notifier         CartNotifier
	eventPublisher   IEventPublisher
	publisherService IPublisherService
	logger           logger.ILogger
	metrics          *metrics.Metrics
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	notifier CartNotifier,
	eventPublisher IEventPublisher,
	publisherService IPublisherService,
	logger logger.ILogger,
	metrics *metrics.Metrics,
) IOrderService {
	return &orderService{
		uowFactory:       uowFactory,
		notifier:         notifier,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		logger:           logger,
		metrics:          metrics,
	}
}

// PlaceOrder turns the session's cart into an order. The order row, its items and the
// cart deletion commit together or not at all. The cart is read inside the transaction with
// its lines locked, and only those lines are deleted, so a line added from another tab
// during checkout stays in the cart.
func (s *orderService) PlaceOrder(ctx context.Context, sessionId uuid.UUID, req *dto.PlaceOrderRequest) (res *dto.OrderResponse, err error) {
	defer func() { s.metrics.ObserveOrder("place", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err = uow.Begin(ctx); err != nil {
		s.logStepFailure(stepBegin, sessionId, uuid.Nil, err)
		return nil, err
	}
	defer uow.Rollback()

	lines, err := uow.CartItemRepository().FindAll(ctx,
		specification.OwnedBySession{SessionID: sessionId},
		specification.Preload{Association: "Product"},
		specification.OrderBy{Field: "created_at"},
		specification.ForUpdate{},
	)
	if err != nil {
		s.logStepFailure(stepLoadCart, sessionId, uuid.Nil, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	now := time.Now()
	order := &entity.Order{
		Id:              uuid.New(),
		UserId:          sessionId,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     entity.CartTotal(lines),
		Status:          entity.OrderStatusPending,
		CreatedAt:       now,
	}
	items := entity.NewOrderItems(order.Id, lines)
	lineIds := make([]uuid.UUID, 0, len(lines))
	for i, item := range items {
		item.Id = uuid.New()
		// Items are read back by created_at; one microsecond apart keeps cart order on Postgres.
		item.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		lineIds = append(lineIds, lines[i].Id)
	}

	if err = uow.OrderRepository().Create(ctx, order); err != nil {
		s.logStepFailure(stepInsertOrder, sessionId, order.Id, err)
		return nil, err
	}
	if err = uow.OrderRepository().CreateItems(ctx, items); err != nil {
		s.logStepFailure(stepInsertItems, sessionId, order.Id, err)
		return nil, err
	}
	if err = uow.CartItemRepository().DeleteLines(ctx, sessionId, lineIds); err != nil {
		s.logStepFailure(stepClearCart, sessionId, order.Id, err)
		return nil, err
	}
	if err = uow.Commit(); err != nil {
		s.logStepFailure(stepCommit, sessionId, order.Id, err)
		return nil, err
	}
	order.Items = items

	s.logger.Info(orderModule, "Order placed", map[string]interface{}{
		"order_id":     order.Id.String(),
		"order_number": order.OrderNumber(),
		"session_id":   sessionId.String(),
		"total_amount": order.TotalAmount.String(),
		"items":        len(items),
	})
	total, _ := order.TotalAmount.Float64()
	s.metrics.ObserveOrderTotal(total)

	s.afterCommit(ctx, sessionId, order)

	return toOrderResponse(order), nil
}

// afterCommit runs the side effects of a placed order. None of them can fail the request.
func (s *orderService) afterCommit(ctx context.Context, sessionId uuid.UUID, order *entity.Order) {
	if s.notifier != nil {
		s.notifier.NotifyCartUpdated(sessionId, toCartResponse(nil))
	}

	if s.eventPublisher != nil {
		evt := newEvent(events.OrderPlaced, map[string]interface{}{
			"order_id":     order.Id.String(),
			"order_number": order.OrderNumber(),
			"session_id":   sessionId.String(),
			"total_amount": order.TotalAmount.String(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn(orderModule, "Failed to publish ORDER_PLACED event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.publisherService != nil {
		payload, err := json.Marshal(dto.OrderConfirmationMessage{OrderId: order.Id})
		if err == nil {
			err = s.publisherService.Publish(ctx, payload)
		}
		if err != nil {
			s.logger.Warn(orderModule, "Failed to enqueue order confirmation", map[string]interface{}{
				"order_id": order.Id.String(),
				"error":    err.Error(),
			})
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, sessionId uuid.UUID, orderId uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.OwnedBySession{SessionID: sessionId},
	)
	if err != nil {
		s.logger.Error(orderModule, "Failed to load order", map[string]interface{}{
			"order_id": orderId.String(),
			"error":    err.Error(),
		})
		return nil, err
	}
	if order == nil {
		return nil, apperror.ErrNotFound
	}

	items, err := uow.OrderRepository().FindItems(ctx,
		specification.ByOrderID{OrderID: order.Id},
		specification.Preload{Association: "Product"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.logger.Error(orderModule, "Failed to load order items", map[string]interface{}{
			"order_id": orderId.String(),
			"error":    err.Error(),
		})
		return nil, err
	}
	order.Items = items

	return toOrderResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, sessionId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.OwnedBySession{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		s.logger.Error(orderModule, "Failed to list orders", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res, nil
}

func (s *orderService) logStepFailure(step string, sessionId, orderId uuid.UUID, err error) {
	details := map[string]interface{}{
		"step":       step,
		"session_id": sessionId.String(),
		"error":      err.Error(),
	}
	if orderId != uuid.Nil {
		details["order_id"] = orderId.String()
	}
	s.logger.Error(orderModule, "Order placement failed", details)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	res := &dto.OrderResponse{
		Id:              o.Id,
		OrderNumber:     o.OrderNumber(),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range o.Items {
		line := &dto.OrderItemResponse{
			Id:        item.Id,
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		res.Items = append(res.Items, line)
	}
	return res
}
