package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

// CommentService owns the rating/comment set. The one-comment-per-identity
// rule is the caller's responsibility via UserComment; AddComment itself
// always creates, so a rapid double submit can slip through. Kept as-is from
// the original design.
type CommentService interface {
	Comments(ctx context.Context) []models.Comment
	AddComment(ctx context.Context, user models.User, req dto.AddCommentRequest) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID, callerID string, isAdmin bool) error
	LikeComment(ctx context.Context, commentID string) (models.Comment, error)
	ApproveComment(ctx context.Context, commentID string, approved, isAdmin bool) error
	UserComment(ctx context.Context, userID string) (models.Comment, bool)
	AverageRating(ctx context.Context) string
	Summary(ctx context.Context) dto.CommentSummary
}

type commentService struct {
	store     storage.Store
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewCommentService constructs the comment/rating service.
func NewCommentService(store storage.Store, validate *validator.Validate, logger zerolog.Logger) CommentService {
	return &commentService{
		store:     store,
		validator: validate,
		logger:    logger.With().Str("component", "comment_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *commentService) Comments(ctx context.Context) []models.Comment {
	comments := []models.Comment{}
	s.store.Load(ctx, storage.KeyComments, &comments)
	return comments
}

func (s *commentService) AddComment(ctx context.Context, user models.User, req dto.AddCommentRequest) (models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Comment{}, ErrValidation
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Username:   user.Username,
		Text:       strings.TrimSpace(s.sanitizer.Sanitize(req.Text)),
		Rating:     req.Rating,
		CreatedAt:  time.Now().UTC(),
		Likes:      0,
		IsApproved: true,
	}

	s.store.Save(ctx, storage.KeyComments, append(s.Comments(ctx), comment))

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, callerID string, isAdmin bool) error {
	comments := s.Comments(ctx)

	remaining := make([]models.Comment, 0, len(comments))
	found := false
	for _, comment := range comments {
		if comment.ID == commentID {
			if comment.UserID != callerID && !isAdmin {
				return ErrPermissionDenied
			}
			found = true
			continue
		}
		remaining = append(remaining, comment)
	}
	if !found {
		return ErrNotFound
	}

	s.store.Save(ctx, storage.KeyComments, remaining)
	return nil
}

// LikeComment increments the like counter. There is no like-once tracking:
// any viewer may increment repeatedly.
func (s *commentService) LikeComment(ctx context.Context, commentID string) (models.Comment, error) {
	comments := s.Comments(ctx)
	for i := range comments {
		if comments[i].ID != commentID {
			continue
		}
		comments[i].Likes++
		s.store.Save(ctx, storage.KeyComments, comments)
		return comments[i], nil
	}
	return models.Comment{}, ErrNotFound
}

func (s *commentService) ApproveComment(ctx context.Context, commentID string, approved, isAdmin bool) error {
	if !isAdmin {
		return ErrPermissionDenied
	}

	comments := s.Comments(ctx)
	for i := range comments {
		if comments[i].ID != commentID {
			continue
		}
		comments[i].IsApproved = approved
		s.store.Save(ctx, storage.KeyComments, comments)
		return nil
	}
	return ErrNotFound
}

func (s *commentService) UserComment(ctx context.Context, userID string) (models.Comment, bool) {
	for _, comment := range s.Comments(ctx) {
		if comment.UserID == userID {
			return comment, true
		}
	}
	return models.Comment{}, false
}

// AverageRating is computed from the live comment set on every call, never
// cached. Unapproved comments count. One decimal place; "0" for the empty
// set.
func (s *commentService) AverageRating(ctx context.Context) string {
	comments := s.Comments(ctx)
	if len(comments) == 0 {
		return "0"
	}

	total := 0
	for _, comment := range comments {
		total += comment.Rating
	}

	return fmt.Sprintf("%.1f", float64(total)/float64(len(comments)))
}

func (s *commentService) Summary(ctx context.Context) dto.CommentSummary {
	return dto.CommentSummary{
		AverageRating: s.AverageRating(ctx),
		Total:         len(s.Comments(ctx)),
	}
}
