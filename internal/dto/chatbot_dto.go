package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageResponse struct {
	// Id is nil for the apology message, which is never stored.
	Id        *uuid.UUID `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	Sent  *ChatMessageResponse `json:"sent"`
	Reply *ChatMessageResponse `json:"reply"`
}
