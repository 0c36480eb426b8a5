package service

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/metrics"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/llm"

	"github.com/google/uuid"
)

const chatbotModule = "CHATBOT"

// ApologyMessage replaces the assistant reply whenever the round trip fails. It is never stored.
const ApologyMessage = "Sorry, I encountered an error. Please try again."

type IChatbotService interface {
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	Send(ctx context.Context, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	metrics     *metrics.Metrics
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
	metrics *metrics.Metrics,
) IChatbotService {
	return &chatbotService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *chatbotService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := loadTranscript(ctx, uow, sessionId)
	if err != nil {
		s.logger.Error(chatbotModule, "Failed to load chat history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toChatMessageResponse(m))
	}
	return res, nil
}

// Send stores the user's message, asks the model with the prior transcript as context and
// stores the reply. Only a failure to store the user's message is returned as an error.
func (s *chatbotService) Send(ctx context.Context, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperror.NewValidationError("message", "message is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	prior, err := loadTranscript(ctx, uow, sessionId)
	if err != nil {
		s.logger.Error(chatbotModule, "Failed to load chat history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	sent := entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    sessionId,
		Role:      entity.ChatRoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &sent); err != nil {
		s.logger.Error(chatbotModule, "Failed to store user message", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	history := make([]llm.Message, 0, len(prior)+1)
	for _, m := range prior {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: sent.Content})

	res := &dto.SendChatResponse{Sent: toChatMessageResponse(&sent)}

	replyText, err := s.llmProvider.Chat(ctx, history)
	s.metrics.ObserveChat(err)
	if err != nil {
		s.logger.Error(chatbotModule, "Assistant request failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		res.Reply = apologyResponse()
		return res, nil
	}

	reply := entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    sessionId,
		Role:      entity.ChatRoleAssistant,
		Content:   replyText,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &reply); err != nil {
		s.logger.Error(chatbotModule, "Failed to store assistant reply", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		res.Reply = apologyResponse()
		return res, nil
	}

	res.Reply = toChatMessageResponse(&reply)
	return res, nil
}

func loadTranscript(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	return uow.ChatMessageRepository().FindTranscript(ctx, sessionId)
}

func apologyResponse() *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Role:      entity.ChatRoleAssistant,
		Content:   ApologyMessage,
		CreatedAt: time.Now(),
	}
}

func toChatMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	id := m.Id
	return &dto.ChatMessageResponse{
		Id:        &id,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
