package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
