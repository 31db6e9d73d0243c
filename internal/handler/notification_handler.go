package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/service"
)

// NotificationHandler serves the websocket stream pushing in-app
// notifications to the connected identity.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register wires the notification stream route.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *NotificationHandler) handleConnection(conn *websocket.Conn) {
	userID := websocketLocalString(conn, "user_id")
	if userID == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(fiber.StatusUnauthorized, "user id missing"))
		_ = conn.Close()
		return
	}

	notifications, cancel := h.service.Subscribe(userID)
	defer cancel()

	h.logger.Info().Str("user_id", userID).Msg("notification stream connected")
	defer h.logger.Info().Str("user_id", userID).Msg("notification stream disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case notification, ok := <-notifications:
			if !ok {
				return
			}
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
		}
	}
}

func websocketLocalString(conn *websocket.Conn, key string) string {
	if value := conn.Locals(key); value != nil {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
