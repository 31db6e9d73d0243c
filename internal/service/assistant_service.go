package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/observability"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
	"github.com/rooby-labs/konexa-go-api/pkg/assistant"
)

const assistantStreamBufferSize = 8

// AssistantService owns the per-identity assistant transcript and widget
// settings. Replies arrive asynchronously after a short randomized delay;
// Subscribe exposes them as they land. Start must be called before SendMessage
// so that pending replies outlive the originating request.
type AssistantService interface {
	Start(ctx context.Context)
	History(ctx context.Context, username string) []models.AssistantMessage
	SendMessage(ctx context.Context, username string, req dto.AssistantSendRequest) (models.AssistantMessage, error)
	ClearConversation(ctx context.Context, username string) []models.AssistantMessage
	Theme(ctx context.Context, username string) models.AssistantTheme
	UpdateTheme(ctx context.Context, username string, req dto.AssistantThemeRequest) (models.AssistantTheme, error)
	Subscribe(username string) (<-chan models.AssistantMessage, func())
	Wait()
}

type assistantService struct {
	store     storage.Store
	responder assistant.Responder
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy

	minWait time.Duration
	maxWait time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	root    context.Context
	pending sync.WaitGroup

	now func() time.Time

	broker *assistantBroker
}

type assistantBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan models.AssistantMessage]struct{}
}

// NewAssistantService constructs the assistant service. minWait and maxWait
// bound the simulated thinking delay before a reply is appended.
func NewAssistantService(store storage.Store, responder assistant.Responder, validate *validator.Validate, minWait, maxWait time.Duration, logger zerolog.Logger) AssistantService {
	if maxWait < minWait {
		maxWait = minWait
	}

	return &assistantService{
		store:     store,
		responder: responder,
		validator: validate,
		logger:    logger.With().Str("component", "assistant_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
		minWait:   minWait,
		maxWait:   maxWait,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		root:      context.Background(),
		now:       time.Now,
		broker: &assistantBroker{
			subscribers: make(map[string]map[chan models.AssistantMessage]struct{}),
		},
	}
}

// Start pins the context that pending replies run under. Cancelling it drops
// every scheduled reply that has not fired yet.
func (s *assistantService) Start(ctx context.Context) {
	s.root = ctx
}

// Wait blocks until every scheduled reply has either fired or been cancelled.
func (s *assistantService) Wait() {
	s.pending.Wait()
}

// History returns the transcript for the identity, seeding the time-of-day
// welcome message on first contact.
func (s *assistantService) History(ctx context.Context, username string) []models.AssistantMessage {
	history := []models.AssistantMessage{}
	s.store.Load(ctx, storage.AssistantHistoryKey(username), &history)
	if len(history) > 0 {
		return history
	}

	welcome := models.AssistantMessage{
		Text:      assistant.WelcomeMessage(username, s.now()),
		Sender:    models.AssistantSenderAssistant,
		Timestamp: s.now().UTC(),
	}
	history = append(history, welcome)
	s.store.Save(ctx, storage.AssistantHistoryKey(username), history)

	return history
}

// SendMessage appends the user message to the transcript and schedules the
// reply. The reply is generated and appended in the background once the delay
// elapses; subscribers receive it immediately when it does.
func (s *assistantService) SendMessage(ctx context.Context, username string, req dto.AssistantSendRequest) (models.AssistantMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.AssistantMessage{}, ErrValidation
	}

	text := strings.TrimSpace(s.sanitizer.Sanitize(req.Text))
	if text == "" {
		return models.AssistantMessage{}, ErrEmptyMessage
	}

	message := models.AssistantMessage{
		Text:      text,
		Sender:    models.AssistantSenderUser,
		Timestamp: s.now().UTC(),
	}

	history := s.History(ctx, username)
	s.store.Save(ctx, storage.AssistantHistoryKey(username), append(history, message))

	s.scheduleReply(username, text)

	return message, nil
}

func (s *assistantService) scheduleReply(username, message string) {
	delay := s.replyDelay()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		select {
		case <-s.root.Done():
			return
		case <-time.After(delay):
		}

		reply, err := s.responder.Reply(s.root, username, message)
		if err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("assistant reply failed")
			return
		}

		entry := models.AssistantMessage{
			Text:      reply.Text,
			Sender:    models.AssistantSenderAssistant,
			Timestamp: s.now().UTC(),
		}

		history := []models.AssistantMessage{}
		s.store.Load(s.root, storage.AssistantHistoryKey(username), &history)
		s.store.Save(s.root, storage.AssistantHistoryKey(username), append(history, entry))

		s.broker.broadcast(username, entry)
		observability.AssistantReplies().WithLabelValues(reply.Topic).Inc()
	}()
}

func (s *assistantService) replyDelay() time.Duration {
	if s.maxWait <= s.minWait {
		return s.minWait
	}

	s.rngMu.Lock()
	jitter := time.Duration(s.rng.Int63n(int64(s.maxWait - s.minWait)))
	s.rngMu.Unlock()

	return s.minWait + jitter
}

// ClearConversation wipes the transcript and reseeds the welcome message.
func (s *assistantService) ClearConversation(ctx context.Context, username string) []models.AssistantMessage {
	s.store.Remove(ctx, storage.AssistantHistoryKey(username))
	return s.History(ctx, username)
}

func (s *assistantService) Theme(ctx context.Context, username string) models.AssistantTheme {
	theme := models.DefaultAssistantTheme()
	s.store.Load(ctx, storage.AssistantThemeKey(username), &theme)
	return theme
}

// UpdateTheme merges the request into the persisted widget settings.
func (s *assistantService) UpdateTheme(ctx context.Context, username string, req dto.AssistantThemeRequest) (models.AssistantTheme, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.AssistantTheme{}, ErrValidation
	}

	theme := s.Theme(ctx, username)
	if req.PrimaryColor != nil {
		theme.PrimaryColor = *req.PrimaryColor
	}
	if req.AccentColor != nil {
		theme.AccentColor = *req.AccentColor
	}
	if req.AvatarStyle != nil {
		theme.AvatarStyle = *req.AvatarStyle
	}
	if req.BubbleStyle != nil {
		theme.BubbleStyle = *req.BubbleStyle
	}
	if req.FontStyle != nil {
		theme.FontStyle = *req.FontStyle
	}

	s.store.Save(ctx, storage.AssistantThemeKey(username), theme)

	return theme, nil
}

// Subscribe streams replies for the identity as they are appended.
func (s *assistantService) Subscribe(username string) (<-chan models.AssistantMessage, func()) {
	channel := make(chan models.AssistantMessage, assistantStreamBufferSize)

	s.broker.subscribe(username, channel)
	observability.StreamClientsActive().Inc()

	cleanup := func() {
		s.broker.unsubscribe(username, channel)
		observability.StreamClientsActive().Dec()
	}

	return channel, cleanup
}

func (b *assistantBroker) subscribe(username string, ch chan models.AssistantMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[username]; !exists {
		b.subscribers[username] = make(map[chan models.AssistantMessage]struct{})
	}
	b.subscribers[username][ch] = struct{}{}
}

func (b *assistantBroker) unsubscribe(username string, ch chan models.AssistantMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[username]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, username)
		}
	}
}

func (b *assistantBroker) broadcast(username string, message models.AssistantMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[username] {
		select {
		case ch <- message:
		default:
		}
	}
}
