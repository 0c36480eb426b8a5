package handler

import (
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/serverutils"
	internalWS "storefront-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// CartPushHandler upgrades /api/ws/v1 connections and hands them to the hub.
// Browsers pass the session as ?session_id= because the handshake cannot carry headers.
type CartPushHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewCartPushHandler(hub *internalWS.Hub, log logger.ILogger) *CartPushHandler {
	return &CartPushHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *CartPushHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/v1", serverutils.SessionMiddleware, h.ServeWs)
}

func (h *CartPushHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID := serverutils.SessionID(c)
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("CartPushHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("CartPushHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}
