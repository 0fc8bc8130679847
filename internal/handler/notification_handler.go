package handler

import (
	"monarch-crm-be/internal/pkg/logger"
	internalWS "monarch-crm-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotificationHandler exposes the dashboard notification socket. The CRM is
// single-operator, so the handshake carries no identity.
type NotificationHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	ws := r.Group("/ws")
	ws.Use("/notifications", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/notifications", websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(h.hub, conn)
	}))
}
