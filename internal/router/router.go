package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rooby-labs/konexa-go-api/internal/config"
	"github.com/rooby-labs/konexa-go-api/internal/handler"
	"github.com/rooby-labs/konexa-go-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler             *handler.AuthHandler
	AdminUserHandler        *handler.AdminUserHandler
	AdminMaintenanceHandler *handler.AdminMaintenanceHandler
	CommunityHandler        *handler.CommunityHandler
	MessagingHandler        *handler.MessagingHandler
	PollHandler             *handler.PollHandler
	CommentHandler          *handler.CommentHandler
	AssistantHandler        *handler.AssistantHandler
	ThemeHandler            *handler.ThemeHandler
	NotificationHandler     *handler.NotificationHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.RequireRole("admin")

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
		deps.AuthHandler.RegisterProtected(api.Group("/auth", jwtMiddleware))
	}

	if deps.CommunityHandler != nil {
		community := api.Group("/community", jwtMiddleware)
		deps.CommunityHandler.Register(community)
		deps.CommunityHandler.RegisterAdmin(community.Group("", adminOnly))
	}

	if deps.MessagingHandler != nil {
		deps.MessagingHandler.Register(api.Group("/messaging", jwtMiddleware))
	}

	if deps.PollHandler != nil {
		polls := api.Group("/polls", jwtMiddleware)
		deps.PollHandler.Register(polls)
		deps.PollHandler.RegisterAdmin(polls.Group("", adminOnly))
	}

	if deps.CommentHandler != nil {
		comments := api.Group("/comments", jwtMiddleware)
		deps.CommentHandler.Register(comments)
		deps.CommentHandler.RegisterAdmin(comments.Group("", adminOnly))
	}

	if deps.AssistantHandler != nil {
		deps.AssistantHandler.Register(api.Group("/assistant", jwtMiddleware))
	}

	if deps.ThemeHandler != nil {
		deps.ThemeHandler.Register(api.Group("/theme", jwtMiddleware))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}

	if deps.AdminUserHandler != nil || deps.AdminMaintenanceHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, adminOnly)
		if deps.AdminUserHandler != nil {
			deps.AdminUserHandler.Register(admin.Group("/users"))
		}
		if deps.AdminMaintenanceHandler != nil {
			deps.AdminMaintenanceHandler.Register(admin.Group("/maintenance"))
		}
	}
}
