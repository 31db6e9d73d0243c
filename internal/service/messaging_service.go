package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

// MessagingService owns the per-identity conversation lists. A conversation
// lives only in its owner's document; the recipient's copy, if any, is a
// separate document that is never reconciled automatically.
type MessagingService interface {
	Conversations(ctx context.Context, user models.User) []models.Conversation
	Conversation(ctx context.Context, user models.User, conversationID string) (models.Conversation, error)
	EnsureConversation(ctx context.Context, user models.User, recipientID string) (string, error)
	SendMessage(ctx context.Context, user models.User, conversationID, content string) (models.PrivateMessage, error)
	MarkAsRead(ctx context.Context, user models.User, conversationID string) error
	ReceiveMessage(ctx context.Context, user models.User, req dto.ReceiveMessageRequest) (models.PrivateMessage, error)
	DeleteConversation(ctx context.Context, user models.User, conversationID string) error
	SearchConversations(ctx context.Context, user models.User, term string) []models.Conversation
}

type messagingService struct {
	store    storage.Store
	auth     AuthService
	notifier NotificationService
	logger   zerolog.Logger
}

// NewMessagingService constructs the private messaging service.
func NewMessagingService(store storage.Store, auth AuthService, notifier NotificationService, logger zerolog.Logger) MessagingService {
	return &messagingService{
		store:    store,
		auth:     auth,
		notifier: notifier,
		logger:   logger.With().Str("component", "messaging_service").Logger(),
	}
}

func (s *messagingService) Conversations(ctx context.Context, user models.User) []models.Conversation {
	conversations := s.load(ctx, user)
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageDate.After(conversations[j].LastMessageDate)
	})
	return conversations
}

func (s *messagingService) Conversation(ctx context.Context, user models.User, conversationID string) (models.Conversation, error) {
	for _, conversation := range s.load(ctx, user) {
		if conversation.ID == conversationID {
			return conversation, nil
		}
	}
	return models.Conversation{}, ErrNotFound
}

// EnsureConversation returns the existing thread with the recipient or lazily
// creates an empty one. At most one thread per participant pair exists in the
// caller's store.
func (s *messagingService) EnsureConversation(ctx context.Context, user models.User, recipientID string) (string, error) {
	if user.ID == recipientID {
		return "", ErrSelfConversation
	}

	conversations := s.load(ctx, user)
	for _, conversation := range conversations {
		if conversation.HasParticipant(recipientID) {
			return conversation.ID, nil
		}
	}

	recipientName := fmt.Sprintf("User%s", recipientID)
	if recipient, ok := s.auth.UserByID(ctx, recipientID); ok {
		recipientName = recipient.Username
	}

	conversation := models.Conversation{
		ID: uuid.NewString(),
		Participants: []models.Participant{
			{ID: user.ID, Username: user.Username},
			{ID: recipientID, Username: recipientName},
		},
		Messages:        []models.PrivateMessage{},
		LastMessage:     "",
		LastMessageDate: time.Now().UTC(),
		UnreadCount:     0,
	}

	s.save(ctx, user, append(conversations, conversation))

	return conversation.ID, nil
}

func (s *messagingService) SendMessage(ctx context.Context, user models.User, conversationID, content string) (models.PrivateMessage, error) {
	if strings.TrimSpace(content) == "" {
		return models.PrivateMessage{}, ErrEmptyMessage
	}

	message := models.PrivateMessage{
		ID:        uuid.NewString(),
		Content:   content,
		SenderID:  user.ID,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}

	conversation, err := s.appendMessage(ctx, user, conversationID, message, false)
	if err != nil {
		return models.PrivateMessage{}, err
	}

	if s.notifier != nil {
		for _, participant := range conversation.Participants {
			if participant.ID == user.ID {
				continue
			}
			s.notifier.Publish(ctx, participant.ID, models.NotificationMessage,
				fmt.Sprintf("New private message from %s", user.Username))
		}
	}

	return message, nil
}

// MarkAsRead flips the read flag on every message not authored by the caller
// and resets the unread counter.
func (s *messagingService) MarkAsRead(ctx context.Context, user models.User, conversationID string) error {
	conversations := s.load(ctx, user)
	for i := range conversations {
		if conversations[i].ID != conversationID {
			continue
		}
		for j := range conversations[i].Messages {
			if conversations[i].Messages[j].SenderID != user.ID {
				conversations[i].Messages[j].Read = true
			}
		}
		conversations[i].UnreadCount = 0
		s.save(ctx, user, conversations)
		return nil
	}
	return ErrNotFound
}

// ReceiveMessage simulates inbound delivery into the caller's store: it
// resolves or creates the thread with the sender, appends the message and
// bumps the unread counter.
func (s *messagingService) ReceiveMessage(ctx context.Context, user models.User, req dto.ReceiveMessageRequest) (models.PrivateMessage, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.PrivateMessage{}, ErrEmptyMessage
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		id, err := s.EnsureConversation(ctx, user, req.SenderID)
		if err != nil {
			return models.PrivateMessage{}, err
		}
		conversationID = id
	} else {
		// An explicit thread id must already carry the sender; otherwise any
		// sender id could be injected into an unrelated thread.
		conversation, err := s.Conversation(ctx, user, conversationID)
		if err != nil {
			return models.PrivateMessage{}, err
		}
		if !conversation.HasParticipant(req.SenderID) {
			return models.PrivateMessage{}, ErrValidation
		}
	}

	message := models.PrivateMessage{
		ID:        uuid.NewString(),
		Content:   req.Content,
		SenderID:  req.SenderID,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}

	if _, err := s.appendMessage(ctx, user, conversationID, message, true); err != nil {
		return models.PrivateMessage{}, err
	}

	if s.notifier != nil {
		s.notifier.Publish(ctx, user.ID, models.NotificationMessage, "You received a new private message")
	}

	return message, nil
}

func (s *messagingService) DeleteConversation(ctx context.Context, user models.User, conversationID string) error {
	conversations := s.load(ctx, user)

	remaining := make([]models.Conversation, 0, len(conversations))
	found := false
	for _, conversation := range conversations {
		if conversation.ID == conversationID {
			found = true
			continue
		}
		remaining = append(remaining, conversation)
	}
	if !found {
		return ErrNotFound
	}

	s.save(ctx, user, remaining)
	return nil
}

// SearchConversations matches the term case-insensitively against participant
// usernames, message bodies and the cached last message. An empty term
// returns everything.
func (s *messagingService) SearchConversations(ctx context.Context, user models.User, term string) []models.Conversation {
	conversations := s.Conversations(ctx, user)

	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return conversations
	}

	matched := []models.Conversation{}
	for _, conversation := range conversations {
		if conversationMatches(conversation, normalized) {
			matched = append(matched, conversation)
		}
	}
	return matched
}

func conversationMatches(conversation models.Conversation, term string) bool {
	for _, participant := range conversation.Participants {
		if strings.Contains(strings.ToLower(participant.Username), term) {
			return true
		}
	}
	for _, message := range conversation.Messages {
		if strings.Contains(strings.ToLower(message.Content), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(conversation.LastMessage), term)
}

func (s *messagingService) appendMessage(ctx context.Context, user models.User, conversationID string, message models.PrivateMessage, inbound bool) (models.Conversation, error) {
	conversations := s.load(ctx, user)
	for i := range conversations {
		if conversations[i].ID != conversationID {
			continue
		}
		conversations[i].Messages = append(conversations[i].Messages, message)
		conversations[i].LastMessage = message.Content
		conversations[i].LastMessageDate = message.Timestamp
		if inbound {
			conversations[i].UnreadCount++
		}
		s.save(ctx, user, conversations)
		return conversations[i], nil
	}
	return models.Conversation{}, ErrNotFound
}

func (s *messagingService) load(ctx context.Context, user models.User) []models.Conversation {
	conversations := []models.Conversation{}
	s.store.Load(ctx, storage.ConversationsKey(user.ID), &conversations)
	return conversations
}

func (s *messagingService) save(ctx context.Context, user models.User, conversations []models.Conversation) {
	s.store.Save(ctx, storage.ConversationsKey(user.ID), conversations)
}
