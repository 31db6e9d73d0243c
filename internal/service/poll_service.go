package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

// PollService owns the single current poll and its archive. Expiry is
// polling-based: one scheduled check owned by the service, not ad hoc timers
// per caller.
type PollService interface {
	Current(ctx context.Context) (models.Poll, bool)
	History(ctx context.Context) []models.Poll
	HasVoted(ctx context.Context, username string) bool
	Vote(ctx context.Context, user models.User, itemID string) (models.Poll, error)
	CreatePoll(ctx context.Context, actor models.User, req dto.CreatePollRequest) (models.Poll, error)
	ResetCurrentPoll(ctx context.Context, actor models.User) error
	NextPollDate(ctx context.Context) time.Time
	ExpireIfEnded(ctx context.Context) bool
	Run(ctx context.Context, interval time.Duration)
}

type pollService struct {
	store     storage.Store
	auth      AuthService
	notifier  NotificationService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPollService constructs the poll service.
func NewPollService(store storage.Store, auth AuthService, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) PollService {
	return &pollService{
		store:     store,
		auth:      auth,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "poll_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *pollService) Current(ctx context.Context) (models.Poll, bool) {
	var poll models.Poll
	if !s.store.Load(ctx, storage.KeyCurrentPoll, &poll) {
		return models.Poll{}, false
	}
	return poll, true
}

func (s *pollService) History(ctx context.Context) []models.Poll {
	history := []models.Poll{}
	s.store.Load(ctx, storage.KeyPollHistory, &history)
	return history
}

func (s *pollService) HasVoted(ctx context.Context, username string) bool {
	poll, ok := s.Current(ctx)
	return ok && poll.HasVoted(username)
}

// Vote appends the caller's username to the chosen item's voter list, exactly
// once per poll. A repeated vote is a no-op: the poll is returned unchanged.
func (s *pollService) Vote(ctx context.Context, user models.User, itemID string) (models.Poll, error) {
	poll, ok := s.Current(ctx)
	if !ok {
		return models.Poll{}, ErrNotFound
	}
	if poll.HasVoted(user.Username) {
		return poll, nil
	}

	voted := false
	for i := range poll.Items {
		if poll.Items[i].ID == itemID {
			poll.Items[i].Votes = append(poll.Items[i].Votes, user.Username)
			voted = true
			break
		}
	}
	if !voted {
		return models.Poll{}, ErrNotFound
	}

	s.store.Save(ctx, storage.KeyCurrentPoll, poll)

	return poll, nil
}

func (s *pollService) CreatePoll(ctx context.Context, actor models.User, req dto.CreatePollRequest) (models.Poll, error) {
	if !actor.IsAdmin {
		return models.Poll{}, ErrPermissionDenied
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Poll{}, ErrValidation
	}

	// A running poll is archived before being replaced.
	if current, ok := s.Current(ctx); ok {
		s.archive(ctx, current)
	}

	items := make([]models.PollItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.PollItem{
			ID:          uuid.NewString(),
			Title:       item.Title,
			Author:      item.Author,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Votes:       []string{},
		})
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = s.now()
	}

	poll := models.Poll{
		Title:       req.Title,
		Description: req.Description,
		Items:       items,
		CreatedAt:   s.now(),
		CreatedBy:   actor.Username,
		StartDate:   startDate,
		EndDate:     req.EndDate,
	}

	s.store.Save(ctx, storage.KeyCurrentPoll, poll)
	s.logger.Info().Str("title", poll.Title).Str("created_by", poll.CreatedBy).Msg("poll created")

	if s.notifier != nil {
		for _, user := range s.auth.Users(ctx) {
			s.notifier.Publish(ctx, user.ID, models.NotificationPoll,
				fmt.Sprintf("A new poll is open: %s", poll.Title))
		}
	}

	return poll, nil
}

func (s *pollService) ResetCurrentPoll(ctx context.Context, actor models.User) error {
	if !actor.IsAdmin {
		return ErrPermissionDenied
	}

	poll, ok := s.Current(ctx)
	if !ok {
		return ErrNotFound
	}

	s.archive(ctx, poll)
	return nil
}

// NextPollDate returns the current poll's end date, or now when no poll is
// running.
func (s *pollService) NextPollDate(ctx context.Context) time.Time {
	if poll, ok := s.Current(ctx); ok {
		return poll.EndDate
	}
	return s.now()
}

// ExpireIfEnded archives the current poll when its end date has passed.
// Reports whether an archive happened.
func (s *pollService) ExpireIfEnded(ctx context.Context) bool {
	poll, ok := s.Current(ctx)
	if !ok {
		return false
	}
	if !s.now().After(poll.EndDate) {
		return false
	}

	s.archive(ctx, poll)
	s.logger.Info().Str("title", poll.Title).Time("end_date", poll.EndDate).Msg("poll expired and archived")

	return true
}

// Run performs the expiry check immediately and then on every tick until the
// context is cancelled.
func (s *pollService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	s.ExpireIfEnded(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ExpireIfEnded(ctx)
		}
	}
}

func (s *pollService) archive(ctx context.Context, poll models.Poll) {
	endedAt := s.now()
	poll.Ended = true
	poll.EndedAt = &endedAt

	history := append([]models.Poll{poll}, s.History(ctx)...)
	s.store.Save(ctx, storage.KeyPollHistory, history)
	s.store.Remove(ctx, storage.KeyCurrentPoll)
}
