package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// ThemeHandler serves the appearance endpoints.
type ThemeHandler struct {
	service service.ThemeService
	logger  zerolog.Logger
}

// NewThemeHandler constructs the handler.
func NewThemeHandler(service service.ThemeService, logger zerolog.Logger) *ThemeHandler {
	return &ThemeHandler{
		service: service,
		logger:  logger.With().Str("component", "theme_handler").Logger(),
	}
}

// Register wires the theme routes.
func (h *ThemeHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
}

func (h *ThemeHandler) get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "theme retrieved", h.service.Theme(c.UserContext()))
}

func (h *ThemeHandler) update(c *fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	theme := h.service.UpdateTheme(c.UserContext(), req)
	return utils.SendSuccess(c, "theme updated", theme)
}
