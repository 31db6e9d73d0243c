package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/config"
	"github.com/rooby-labs/konexa-go-api/internal/database"
	"github.com/rooby-labs/konexa-go-api/internal/handler"
	"github.com/rooby-labs/konexa-go-api/internal/middleware"
	"github.com/rooby-labs/konexa-go-api/internal/router"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
	"github.com/rooby-labs/konexa-go-api/pkg/assistant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	schemas, err := storage.DefaultSchemas()
	if err != nil {
		log.Fatalf("failed to compile document schemas: %v", err)
	}
	store := storage.NewRedisStore(redisClient, schemas, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	responder, err := buildResponder(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build assistant responder: %v", err)
	}

	authService := service.NewAuthService(store, validate, logger)
	notificationService := service.NewNotificationService(authService, logger)
	communityService := service.NewCommunityService(store, authService, notificationService, validate, cfg.AttachmentMaxMB, logger)
	messagingService := service.NewMessagingService(store, authService, notificationService, logger)
	pollService := service.NewPollService(store, authService, notificationService, validate, logger)
	commentService := service.NewCommentService(store, validate, logger)
	themeService := service.NewThemeService(store, logger)
	assistantService := service.NewAssistantService(store, responder, validate, cfg.AssistantMinWait, cfg.AssistantMaxWait, logger)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assistantService.Start(rootCtx)
	go pollService.Run(rootCtx, cfg.PollCheckEvery)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(authService, tokens, logger),
		AdminUserHandler:        handler.NewAdminUserHandler(authService, logger),
		AdminMaintenanceHandler: handler.NewAdminMaintenanceHandler(store, logger),
		CommunityHandler:        handler.NewCommunityHandler(communityService, authService, logger),
		MessagingHandler:        handler.NewMessagingHandler(messagingService, authService, logger),
		PollHandler:             handler.NewPollHandler(pollService, authService, logger),
		CommentHandler:          handler.NewCommentHandler(commentService, authService, logger),
		AssistantHandler:        handler.NewAssistantHandler(assistantService, authService, logger),
		ThemeHandler:            handler.NewThemeHandler(themeService, logger),
		NotificationHandler:     handler.NewNotificationHandler(notificationService, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, cancel, assistantService)
}

func buildResponder(cfg config.Config, logger zerolog.Logger) (assistant.Responder, error) {
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey != "" {
		return assistant.NewOpenAIResponder(assistant.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
	}
	return assistant.NewScripted(), nil
}

func waitForShutdown(app *fiber.App, cancel context.CancelFunc, assistantService service.AssistantService) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// Drop pending assistant replies, then wait for in-flight ones.
	cancel()
	assistantService.Wait()

	log.Println("server stopped")
}
