package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// AdminUserHandler serves the member-management panel endpoints.
type AdminUserHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.AuthService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register wires the admin user-management routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Put("/role", h.updateRole)
	router.Put("/block", h.setBlocked)
	router.Put("/:id", h.edit)
	router.Delete("/:id", h.remove)
}

func (h *AdminUserHandler) updateRole(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	if err := h.service.UpdateUserRole(c.UserContext(), actor.ID, req.Username, req.IsAdmin); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	requestLogger(h.logger, c).Info().
		Str("actor", actor.Username).
		Str("target", req.Username).
		Bool("admin", req.IsAdmin).
		Msg("role updated")

	return utils.SendSuccess(c, "role updated", nil)
}

func (h *AdminUserHandler) setBlocked(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	if err := h.service.SetUserBlocked(c.UserContext(), actor.ID, req.Username, req.Blocked); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	message := "user unblocked"
	if req.Blocked {
		message = "user blocked"
	}
	return utils.SendSuccess(c, message, nil)
}

func (h *AdminUserHandler) edit(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.EditUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	updated, err := h.service.EditUser(c.UserContext(), actor.ID, c.Params("id"), req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "user updated", dto.NewUserResponse(updated))
}

func (h *AdminUserHandler) remove(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.DeleteUser(c.UserContext(), actor.ID, c.Params("id")); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "user deleted", nil)
}
