package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

// mentionPattern matches @username tokens: consecutive word characters after
// the at sign.
var mentionPattern = regexp.MustCompile(`@(\w+)\b`)

// CommunityService owns the public feed, the per-identity block lists and the
// feed enable toggle.
type CommunityService interface {
	Messages(ctx context.Context) []models.CommunityMessage
	VisibleMessages(ctx context.Context, viewer models.User) []models.CommunityMessage
	Enabled(ctx context.Context) bool
	SendMessage(ctx context.Context, author models.User, req dto.SendMessageRequest) (models.CommunityMessage, error)
	DeleteMessage(ctx context.Context, actor models.User, messageID string) error
	BlockUser(ctx context.Context, actor models.User, username string) (models.User, error)
	UnblockUser(ctx context.Context, actor models.User, username string) (models.User, error)
	ToggleCommunityStatus(ctx context.Context, actor models.User) (bool, error)
	ClearAllMessages(ctx context.Context, actor models.User) error
}

type communityService struct {
	store              storage.Store
	auth               AuthService
	notifier           NotificationService
	validator          *validator.Validate
	logger             zerolog.Logger
	sanitizer          *bluemonday.Policy
	maxAttachmentBytes int
}

// NewCommunityService constructs the community feed service.
func NewCommunityService(store storage.Store, auth AuthService, notifier NotificationService, validate *validator.Validate, maxAttachmentMB int, logger zerolog.Logger) CommunityService {
	if maxAttachmentMB <= 0 {
		maxAttachmentMB = 10
	}
	return &communityService{
		store:              store,
		auth:               auth,
		notifier:           notifier,
		validator:          validate,
		logger:             logger.With().Str("component", "community_service").Logger(),
		sanitizer:          bluemonday.StrictPolicy(),
		maxAttachmentBytes: maxAttachmentMB * 1024 * 1024,
	}
}

func (s *communityService) Messages(ctx context.Context) []models.CommunityMessage {
	messages := []models.CommunityMessage{}
	s.store.Load(ctx, storage.KeyMessages, &messages)
	return messages
}

// VisibleMessages filters out messages whose author the viewer has blocked.
// Blocks only affect the blocking viewer's own feed.
func (s *communityService) VisibleMessages(ctx context.Context, viewer models.User) []models.CommunityMessage {
	messages := s.Messages(ctx)
	visible := make([]models.CommunityMessage, 0, len(messages))
	for _, message := range messages {
		if viewer.HasBlocked(message.Username) {
			continue
		}
		visible = append(visible, message)
	}
	return visible
}

func (s *communityService) Enabled(ctx context.Context) bool {
	enabled := true
	s.store.Load(ctx, storage.KeyCommunityEnabled, &enabled)
	return enabled
}

func (s *communityService) SendMessage(ctx context.Context, author models.User, req dto.SendMessageRequest) (models.CommunityMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.CommunityMessage{}, ErrValidation
	}
	if !s.Enabled(ctx) {
		return models.CommunityMessage{}, ErrCommunityDisabled
	}

	text := strings.TrimSpace(s.sanitizer.Sanitize(req.Text))
	if text == "" && req.Attachment == nil {
		return models.CommunityMessage{}, ErrValidation
	}

	message := models.CommunityMessage{
		ID:          uuid.NewString(),
		Username:    author.Username,
		Text:        text,
		Timestamp:   time.Now().UTC(),
		TaggedUsers: extractMentions(text),
	}

	if req.Attachment != nil {
		media, kind, err := s.inlineAttachment(req.Attachment)
		if err != nil {
			return models.CommunityMessage{}, err
		}
		message.Media = media
		message.MediaType = kind
	}

	messages := append(s.Messages(ctx), message)
	s.store.Save(ctx, storage.KeyMessages, messages)

	s.notifyMentions(ctx, message)

	return message, nil
}

// DeleteMessage removes a feed message. Authorization is enforced here rather
// than left to the caller: only the author or an admin may delete.
func (s *communityService) DeleteMessage(ctx context.Context, actor models.User, messageID string) error {
	messages := s.Messages(ctx)

	remaining := make([]models.CommunityMessage, 0, len(messages))
	found := false
	for _, message := range messages {
		if message.ID == messageID {
			if message.Username != actor.Username && !actor.IsAdmin {
				return ErrPermissionDenied
			}
			found = true
			continue
		}
		remaining = append(remaining, message)
	}
	if !found {
		return ErrNotFound
	}

	s.store.Save(ctx, storage.KeyMessages, remaining)
	return nil
}

func (s *communityService) BlockUser(ctx context.Context, actor models.User, username string) (models.User, error) {
	// Blocking yourself is a no-op.
	if actor.Username == username {
		return actor, nil
	}
	if actor.HasBlocked(username) {
		return actor, nil
	}

	return s.auth.SetBlockedList(ctx, actor.ID, append(actor.BlockedUsers, username))
}

func (s *communityService) UnblockUser(ctx context.Context, actor models.User, username string) (models.User, error) {
	remaining := make([]string, 0, len(actor.BlockedUsers))
	for _, blocked := range actor.BlockedUsers {
		if blocked == username {
			continue
		}
		remaining = append(remaining, blocked)
	}

	return s.auth.SetBlockedList(ctx, actor.ID, remaining)
}

func (s *communityService) ToggleCommunityStatus(ctx context.Context, actor models.User) (bool, error) {
	if !actor.IsAdmin {
		return false, ErrPermissionDenied
	}

	enabled := !s.Enabled(ctx)
	s.store.Save(ctx, storage.KeyCommunityEnabled, enabled)

	s.logger.Info().Bool("enabled", enabled).Str("actor", actor.Username).Msg("community status toggled")

	return enabled, nil
}

func (s *communityService) ClearAllMessages(ctx context.Context, actor models.User) error {
	if !actor.IsAdmin {
		return ErrPermissionDenied
	}

	s.store.Remove(ctx, storage.KeyMessages)
	return nil
}

// inlineAttachment decodes, sniffs and re-encodes the upload as a data URL.
// Only images and videos up to the configured cap are accepted.
func (s *communityService) inlineAttachment(attachment *dto.AttachmentPayload) (string, models.AttachmentKind, error) {
	raw, err := base64.StdEncoding.DecodeString(attachment.Data)
	if err != nil {
		return "", "", ErrValidation
	}
	if len(raw) == 0 || len(raw) > s.maxAttachmentBytes {
		return "", "", ErrValidation
	}

	detected := mimetype.Detect(raw)
	var kind models.AttachmentKind
	switch {
	case strings.HasPrefix(detected.String(), "image/"):
		kind = models.AttachmentImage
	case strings.HasPrefix(detected.String(), "video/"):
		kind = models.AttachmentVideo
	default:
		return "", "", ErrValidation
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", detected.String(), base64.StdEncoding.EncodeToString(raw))
	return dataURL, kind, nil
}

func (s *communityService) notifyMentions(ctx context.Context, message models.CommunityMessage) {
	if s.notifier == nil {
		return
	}
	for _, username := range message.TaggedUsers {
		tagged, ok := s.auth.UserByUsername(ctx, username)
		if !ok {
			continue
		}
		s.notifier.Publish(ctx, tagged.ID, models.NotificationMention,
			fmt.Sprintf("%s mentioned you in the community feed", message.Username))
	}
}

// extractMentions returns the distinct @usernames in order of first
// appearance.
func extractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	tagged := []string{}
	for _, match := range matches {
		username := match[1]
		if _, dup := seen[username]; dup {
			continue
		}
		seen[username] = struct{}{}
		tagged = append(tagged, username)
	}
	return tagged
}
