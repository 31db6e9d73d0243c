package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the Konexa API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	RedisURL         string
	JWTSecret        string
	TokenTTL         time.Duration
	PollCheckEvery   time.Duration
	AttachmentMaxMB  int
	AssistantMinWait time.Duration
	AssistantMaxWait time.Duration
	AIProvider       string
	OpenAIAPIKey     string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("KONEXA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Konexa API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("poll.check_every", "1h")
	v.SetDefault("attachment.max_mb", 10)
	v.SetDefault("assistant.min_wait", "1200ms")
	v.SetDefault("assistant.max_wait", "2700ms")
	v.SetDefault("ai.provider", "scripted")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	pollEvery, err := time.ParseDuration(v.GetString("poll.check_every"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid poll check interval: %w", err)
	}

	minWait, err := time.ParseDuration(v.GetString("assistant.min_wait"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid assistant min wait: %w", err)
	}

	maxWait, err := time.ParseDuration(v.GetString("assistant.max_wait"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid assistant max wait: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         tokenTTL,
		PollCheckEvery:   pollEvery,
		AttachmentMaxMB:  v.GetInt("attachment.max_mb"),
		AssistantMinWait: minWait,
		AssistantMaxWait: maxWait,
		AIProvider:       strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AttachmentMaxMB <= 0 {
		cfg.AttachmentMaxMB = 10
	}

	if cfg.AssistantMaxWait < cfg.AssistantMinWait {
		cfg.AssistantMaxWait = cfg.AssistantMinWait
	}

	return cfg, nil
}
