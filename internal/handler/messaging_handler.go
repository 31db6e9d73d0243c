package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// MessagingHandler serves the private conversation endpoints.
type MessagingHandler struct {
	service service.MessagingService
	auth    service.AuthService
	logger  zerolog.Logger
}

// NewMessagingHandler constructs the handler.
func NewMessagingHandler(service service.MessagingService, auth service.AuthService, logger zerolog.Logger) *MessagingHandler {
	return &MessagingHandler{
		service: service,
		auth:    auth,
		logger:  logger.With().Str("component", "messaging_handler").Logger(),
	}
}

// Register wires the conversation routes.
func (h *MessagingHandler) Register(router fiber.Router) {
	router.Get("/conversations", h.list)
	router.Post("/conversations", h.ensure)
	router.Get("/conversations/:id", h.get)
	router.Post("/conversations/:id/messages", h.send)
	router.Put("/conversations/:id/read", h.markAsRead)
	router.Post("/receive", h.receive)
	router.Delete("/conversations/:id", h.remove)
}

// list also serves search when the q query parameter is set.
func (h *MessagingHandler) list(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if term := c.Query("q"); term != "" {
		matched := h.service.SearchConversations(c.UserContext(), user, term)
		return utils.SendSuccess(c, "conversations retrieved", matched)
	}

	conversations := h.service.Conversations(c.UserContext(), user)
	return utils.SendSuccess(c, "conversations retrieved", conversations)
}

func (h *MessagingHandler) ensure(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.EnsureConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	conversationID, err := h.service.EnsureConversation(c.UserContext(), user, req.RecipientID)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "conversation ready", fiber.Map{"conversationId": conversationID})
}

func (h *MessagingHandler) get(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	conversation, err := h.service.Conversation(c.UserContext(), user, c.Params("id"))
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "conversation retrieved", conversation)
}

func (h *MessagingHandler) send(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.SendPrivateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	message, err := h.service.SendMessage(c.UserContext(), user, c.Params("id"), req.Content)
	if err != nil {
		status, msg := statusForError(err)
		return utils.SendError(c, status, msg)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message sent", message)
}

func (h *MessagingHandler) markAsRead(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.MarkAsRead(c.UserContext(), user, c.Params("id")); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "conversation marked as read", nil)
}

func (h *MessagingHandler) receive(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.ReceiveMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	message, err := h.service.ReceiveMessage(c.UserContext(), user, req)
	if err != nil {
		status, msg := statusForError(err)
		return utils.SendError(c, status, msg)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message received", message)
}

func (h *MessagingHandler) remove(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.DeleteConversation(c.UserContext(), user, c.Params("id")); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "conversation deleted", nil)
}
