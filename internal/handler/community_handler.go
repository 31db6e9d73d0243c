package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// CommunityHandler serves the public feed endpoints.
type CommunityHandler struct {
	service service.CommunityService
	auth    service.AuthService
	logger  zerolog.Logger
}

// NewCommunityHandler constructs the handler.
func NewCommunityHandler(service service.CommunityService, auth service.AuthService, logger zerolog.Logger) *CommunityHandler {
	return &CommunityHandler{
		service: service,
		auth:    auth,
		logger:  logger.With().Str("component", "community_handler").Logger(),
	}
}

// Register wires the feed routes.
func (h *CommunityHandler) Register(router fiber.Router) {
	router.Get("/messages", h.messages)
	router.Post("/messages", h.send)
	router.Delete("/messages/:id", h.remove)
	router.Get("/status", h.status)
	router.Post("/block", h.block)
	router.Post("/unblock", h.unblock)
}

// RegisterAdmin wires the feed moderation routes.
func (h *CommunityHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/toggle", h.toggle)
	router.Delete("/messages", h.clear)
}

func (h *CommunityHandler) messages(c *fiber.Ctx) error {
	viewer, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	messages := h.service.VisibleMessages(c.UserContext(), viewer)
	return utils.SendSuccess(c, "messages retrieved", messages)
}

func (h *CommunityHandler) send(c *fiber.Ctx) error {
	author, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	message, err := h.service.SendMessage(c.UserContext(), author, req)
	if err != nil {
		status, msg := statusForError(err)
		return utils.SendError(c, status, msg)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message published", message)
}

func (h *CommunityHandler) remove(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.DeleteMessage(c.UserContext(), actor, c.Params("id")); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "message deleted", nil)
}

func (h *CommunityHandler) status(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "community status retrieved", fiber.Map{
		"enabled": h.service.Enabled(c.UserContext()),
	})
}

func (h *CommunityHandler) block(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	updated, err := h.service.BlockUser(c.UserContext(), actor, req.Username)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "user blocked", dto.NewUserResponse(updated))
}

func (h *CommunityHandler) unblock(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	updated, err := h.service.UnblockUser(c.UserContext(), actor, req.Username)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "user unblocked", dto.NewUserResponse(updated))
}

func (h *CommunityHandler) toggle(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	enabled, err := h.service.ToggleCommunityStatus(c.UserContext(), actor)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "community status updated", fiber.Map{"enabled": enabled})
}

func (h *CommunityHandler) clear(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.ClearAllMessages(c.UserContext(), actor); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "messages cleared", nil)
}
