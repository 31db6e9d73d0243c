package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	service service.AuthService
	tokens  *service.TokenIssuer
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, tokens *service.TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public authentication routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected wires the routes that require an authenticated caller.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/me", h.me)
	router.Get("/users", h.users)
	router.Put("/me/username", h.updateUsername)
	router.Put("/me/password", h.updatePassword)
	router.Get("/me/notification-preferences", h.notificationPreferences)
	router.Put("/me/notification-preferences", h.updateNotificationPreferences)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	user, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to issue token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	user, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to issue token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return utils.SendSuccess(c, "login successful", dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.service.Logout(c.UserContext())
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "profile retrieved", dto.NewUserResponse(user))
}

func (h *AuthHandler) users(c *fiber.Ctx) error {
	users := h.service.Users(c.UserContext())
	return utils.SendSuccess(c, "users retrieved", dto.NewUserResponseSlice(users))
}

func (h *AuthHandler) updateUsername(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.UpdateUsernameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	updated, err := h.service.UpdateUsername(c.UserContext(), actor.ID, req.Username)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	// Renaming changes the token claims; the client must refresh its token.
	token, err := h.tokens.Issue(updated)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to issue token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return utils.SendSuccess(c, "username updated", dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(updated),
	})
}

func (h *AuthHandler) updatePassword(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.service)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	if err := h.service.UpdatePassword(c.UserContext(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "password updated", nil)
}

func (h *AuthHandler) notificationPreferences(c *fiber.Ctx) error {
	preferences := h.service.NotificationPreferences(c.UserContext())
	return utils.SendSuccess(c, "notification preferences retrieved", preferences)
}

func (h *AuthHandler) updateNotificationPreferences(c *fiber.Ctx) error {
	var req dto.NotificationPreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	preferences := h.service.UpdateNotificationPreferences(c.UserContext(), req)
	return utils.SendSuccess(c, "notification preferences updated", preferences)
}
