package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	replyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "konexa",
		Subsystem: "assistant",
		Name:      "reply_duration_seconds",
		Help:      "Duration of model-backed assistant replies",
	}, []string{"model"})

	replyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "konexa",
		Subsystem: "assistant",
		Name:      "reply_failures_total",
		Help:      "Number of model-backed assistant reply failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the model-backed responder.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIResponder implements Responder against the OpenAI chat completion
// API. It is opt-in; the scripted responder remains the default.
type OpenAIResponder struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIResponder builds a responder using the provided configuration.
func NewOpenAIResponder(cfg OpenAIConfig) (*OpenAIResponder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 256
	}

	return &OpenAIResponder{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/rooby-labs/konexa-go-api/pkg/assistant/openai"),
		logger: cfg.Logger,
	}, nil
}

// Reply sends the user message to the chat completion API.
func (r *OpenAIResponder) Reply(parent context.Context, username, message string) (Reply, error) {
	ctx, span := r.tracer.Start(parent, "assistant.openai_reply", trace.WithAttributes(
		attribute.String("model", r.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: assistantSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Member %s asks: %s", username, message),
			},
		},
	}

	resp, err := r.client.CreateChatCompletion(ctx, request)
	replyDuration.WithLabelValues(r.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		replyFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, fmt.Errorf("openai reply: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		replyFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}

	return Reply{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Topic: "model",
	}, nil
}

func assistantSystemPrompt() string {
	return "You are Bybyto, the friendly assistant of the Konexa community platform. Answer briefly and helpfully about the com" +
		"munity feed, weekly polls, private messaging and settings. Konexa was created by Rooby."
}
