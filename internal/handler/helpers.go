package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/middleware"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/service"
)

// actorFromContext resolves the authenticated identity bound by the JWT
// middleware against the directory. The directory is authoritative: a token
// for a deleted or blocked identity does not resolve.
func actorFromContext(c *fiber.Ctx, auth service.AuthService) (models.User, error) {
	userID := middleware.UserID(c)
	if userID == "" {
		return models.User{}, service.ErrNoSession
	}

	user, ok := auth.UserByID(c.UserContext(), userID)
	if !ok {
		return models.User{}, service.ErrNoSession
	}
	if user.IsBlocked {
		return models.User{}, service.ErrAccountBlocked
	}

	return user, nil
}

// statusForError maps service sentinel errors to HTTP status codes and
// client-facing messages.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest, "invalid request payload"
	case errors.Is(err, service.ErrEmptyMessage):
		return fiber.StatusBadRequest, "message must not be empty"
	case errors.Is(err, service.ErrSelfConversation):
		return fiber.StatusBadRequest, "cannot start a conversation with yourself"
	case errors.Is(err, service.ErrSelfDeletion):
		return fiber.StatusBadRequest, "cannot delete your own account"
	case errors.Is(err, service.ErrNoSession):
		return fiber.StatusUnauthorized, "no active session"
	case errors.Is(err, service.ErrInvalidCredential):
		return fiber.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, service.ErrAccountBlocked):
		return fiber.StatusForbidden, "account is blocked"
	case errors.Is(err, service.ErrPermissionDenied):
		return fiber.StatusForbidden, "insufficient permissions"
	case errors.Is(err, service.ErrCommunityDisabled):
		return fiber.StatusForbidden, "the community feed is disabled"
	case errors.Is(err, service.ErrDuplicateUsername):
		return fiber.StatusConflict, "username is already taken"
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "resource not found"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
