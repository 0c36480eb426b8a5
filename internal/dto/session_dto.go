package dto

import "github.com/google/uuid"

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}
