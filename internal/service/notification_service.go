package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/observability"
)

const notificationBufferSize = 16

// NotificationService fans out in-process notifications (feed mentions,
// private messages, new polls) to per-identity subscribers. Delivery respects
// the persisted notification preferences; there is no cross-process fan-out
// because each profile is an island.
type NotificationService interface {
	Publish(ctx context.Context, userID, notificationType, message string)
	Subscribe(userID string) (<-chan models.Notification, func())
}

type notificationService struct {
	auth      AuthService
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
	broker    *notificationBroker
}

type notificationBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan models.Notification]struct{}
}

// NewNotificationService constructs the notification broker.
func NewNotificationService(auth AuthService, logger zerolog.Logger) NotificationService {
	return &notificationService{
		auth:      auth,
		logger:    logger.With().Str("component", "notification_service").Logger(),
		tracer:    otel.Tracer("github.com/rooby-labs/konexa-go-api/internal/service/notification"),
		sanitizer: bluemonday.StrictPolicy(),
		broker: &notificationBroker{
			subscribers: make(map[string]map[chan models.Notification]struct{}),
		},
	}
}

func (s *notificationService) Publish(ctx context.Context, userID, notificationType, message string) {
	if !s.allowed(ctx, notificationType) {
		return
	}

	cleanMessage := strings.TrimSpace(s.sanitizer.Sanitize(message))
	if cleanMessage == "" {
		return
	}

	_, span := s.tracer.Start(ctx, "notifications.publish", trace.WithAttributes(
		attribute.String("notification.user_id", userID),
		attribute.String("notification.type", notificationType),
	))
	defer span.End()

	notification := models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notificationType,
		Message:   cleanMessage,
		CreatedAt: time.Now().UTC(),
	}

	s.broker.broadcast(userID, notification)
	observability.NotificationsPublished().WithLabelValues(notificationType).Inc()
}

func (s *notificationService) Subscribe(userID string) (<-chan models.Notification, func()) {
	channel := make(chan models.Notification, notificationBufferSize)

	s.broker.subscribe(userID, channel)
	observability.StreamClientsActive().Inc()

	cleanup := func() {
		s.broker.unsubscribe(userID, channel)
		observability.StreamClientsActive().Dec()
	}

	return channel, cleanup
}

func (s *notificationService) allowed(ctx context.Context, notificationType string) bool {
	preferences := s.auth.NotificationPreferences(ctx)
	switch notificationType {
	case models.NotificationMention:
		return preferences.CommunityNotifications
	case models.NotificationMessage:
		return preferences.MessagingNotifications
	case models.NotificationPoll:
		return preferences.PollNotifications
	default:
		return true
	}
}

func (b *notificationBroker) subscribe(userID string, ch chan models.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[userID]; !exists {
		b.subscribers[userID] = make(map[chan models.Notification]struct{})
	}
	b.subscribers[userID][ch] = struct{}{}
}

func (b *notificationBroker) unsubscribe(userID string, ch chan models.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[userID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, userID)
		}
	}
}

func (b *notificationBroker) broadcast(userID string, notification models.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[userID] {
		select {
		case ch <- notification:
		default:
		}
	}
}
