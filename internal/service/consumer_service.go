package service

import (
	"context"
	"encoding/json"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/mailer"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "ORDER_CONFIRMATION"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService sends order confirmation emails queued by the order service.
type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OrderConfirmationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Invalid message payload", map[string]interface{}{"error": err.Error()})
		// Ack so a malformed message is not redelivered forever.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: payload.OrderId})
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to load order", map[string]interface{}{
			"order_id": payload.OrderId.String(),
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}
	if order == nil {
		cs.logger.Warn(consumerModule, "Order not found", map[string]interface{}{"order_id": payload.OrderId.String()})
		msg.Ack()
		return
	}

	items, err := uow.OrderRepository().FindItems(ctx,
		specification.ByOrderID{OrderID: order.Id},
		specification.Preload{Association: "Product"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to load order items", map[string]interface{}{
			"order_id": order.Id.String(),
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}
	order.Items = items

	if err := cs.emailService.SendOrderConfirmation(order); err != nil {
		// SMTP failures are not retried; the order itself is already placed.
		cs.logger.Error(consumerModule, "Failed to send order confirmation", map[string]interface{}{
			"order_id": order.Id.String(),
			"error":    err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info(consumerModule, "Order confirmation sent", map[string]interface{}{
		"order_id":     order.Id.String(),
		"order_number": order.OrderNumber(),
	})
	msg.Ack()
}
