package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// AssistantHandler serves the assistant widget endpoints, including the
// websocket stream that pushes replies as they land.
type AssistantHandler struct {
	service service.AssistantService
	auth    service.AuthService
	logger  zerolog.Logger
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(service service.AssistantService, auth service.AuthService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		auth:    auth,
		logger:  logger.With().Str("component", "assistant_handler").Logger(),
	}
}

// Register wires the assistant routes.
func (h *AssistantHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))

	router.Get("/history", h.history)
	router.Post("/messages", h.send)
	router.Delete("/history", h.clear)
	router.Get("/theme", h.theme)
	router.Put("/theme", h.updateTheme)
}

func (h *AssistantHandler) handleConnection(conn *websocket.Conn) {
	username := websocketUsername(conn)
	if username == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(fiber.StatusUnauthorized, "username missing"))
		_ = conn.Close()
		return
	}

	replies, cancel := h.service.Subscribe(username)
	defer cancel()

	h.logger.Info().Str("username", username).Msg("assistant stream connected")
	defer h.logger.Info().Str("username", username).Msg("assistant stream disconnected")

	// Reads only detect disconnect; the client never sends payloads here.
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
		case reply, ok := <-replies:
			if !ok {
				return
			}
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}
}

func (h *AssistantHandler) history(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	history := h.service.History(c.UserContext(), user.Username)
	return utils.SendSuccess(c, "assistant history retrieved", history)
}

func (h *AssistantHandler) send(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.AssistantSendRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	message, err := h.service.SendMessage(c.UserContext(), user.Username, req)
	if err != nil {
		status, msg := statusForError(err)
		return utils.SendError(c, status, msg)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "message received, reply pending", message)
}

func (h *AssistantHandler) clear(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	history := h.service.ClearConversation(c.UserContext(), user.Username)
	return utils.SendSuccess(c, "assistant history cleared", history)
}

func (h *AssistantHandler) theme(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	theme := h.service.Theme(c.UserContext(), user.Username)
	return utils.SendSuccess(c, "assistant theme retrieved", theme)
}

func (h *AssistantHandler) updateTheme(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.AssistantThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	theme, err := h.service.UpdateTheme(c.UserContext(), user.Username, req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "assistant theme updated", theme)
}

func websocketUsername(conn *websocket.Conn) string {
	if value := conn.Locals("username"); value != nil {
		if name, ok := value.(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}
