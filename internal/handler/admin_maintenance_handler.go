package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/storage"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// AdminMaintenanceHandler serves destructive platform maintenance endpoints.
type AdminMaintenanceHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewAdminMaintenanceHandler constructs the handler.
func NewAdminMaintenanceHandler(store storage.Store, logger zerolog.Logger) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{
		store:  store,
		logger: logger.With().Str("component", "admin_maintenance_handler").Logger(),
	}
}

// Register wires the maintenance routes.
func (h *AdminMaintenanceHandler) Register(router fiber.Router) {
	router.Delete("/data", h.reset)
}

// reset wipes every well-known application document. Per-identity documents
// (conversations, assistant transcripts) are left in place.
func (h *AdminMaintenanceHandler) reset(c *fiber.Ctx) error {
	if !h.store.ClearAppData(c.UserContext()) {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to clear application data")
	}

	requestLogger(h.logger, c).Warn().Msg("application data cleared")

	return utils.SendSuccess(c, "application data cleared", nil)
}
