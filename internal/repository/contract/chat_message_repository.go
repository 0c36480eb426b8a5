package contract

import (
	"context"

	"storefront-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// FindTranscript returns the session's messages oldest first.
	FindTranscript(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
}
