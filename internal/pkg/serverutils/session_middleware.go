package serverutils

import (
	"storefront-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader   = "X-Session-ID"
	sessionQuery    = "session_id"
	sessionLocalKey = "session_id"
)

// SessionMiddleware resolves the caller's session id once per request.
// The id is an unverified client token; it only scopes cart, order and chat rows.
func SessionMiddleware(ctx *fiber.Ctx) error {
	raw := ctx.Get(SessionHeader)
	if raw == "" {
		// Browsers cannot set headers on a websocket handshake.
		raw = ctx.Query(sessionQuery)
	}
	if raw == "" {
		return apperror.ErrInvalidSession
	}

	sessionId, err := uuid.Parse(raw)
	if err != nil || sessionId == uuid.Nil {
		return apperror.ErrInvalidSession
	}

	ctx.Locals(sessionLocalKey, sessionId)
	return ctx.Next()
}

// SessionID returns the id stored by SessionMiddleware, or uuid.Nil outside it.
func SessionID(ctx *fiber.Ctx) uuid.UUID {
	if id, ok := ctx.Locals(sessionLocalKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
