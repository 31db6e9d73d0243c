package service

import (
	"context"
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

// AuthService owns the identity directory, the active session snapshot and
// the notification preferences record.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (models.User, bool)
	Users(ctx context.Context) []models.User
	UserByID(ctx context.Context, id string) (models.User, bool)
	UserByUsername(ctx context.Context, username string) (models.User, bool)
	UpdateUsername(ctx context.Context, userID, newUsername string) (models.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateUserRole(ctx context.Context, actorID, username string, isAdmin bool) error
	SetUserBlocked(ctx context.Context, actorID, username string, blocked bool) error
	EditUser(ctx context.Context, actorID, targetID string, req dto.EditUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, actorID, targetID string) error
	SetBlockedList(ctx context.Context, userID string, blocked []string) (models.User, error)
	NotificationPreferences(ctx context.Context) models.NotificationPreferences
	UpdateNotificationPreferences(ctx context.Context, req dto.NotificationPreferencesRequest) models.NotificationPreferences
}

type authService struct {
	store     storage.Store
	validator *validator.Validate
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewAuthService constructs the identity and directory service.
func NewAuthService(store storage.Store, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		store:     store,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, ErrValidation
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 2 {
		return models.User{}, ErrValidation
	}

	users := s.loadUsers(ctx)

	for _, existing := range users {
		if existing.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		RealName:     strings.TrimSpace(s.sanitizer.Sanitize(req.RealName)),
		Password:     req.Password,
		IsAdmin:      len(users) == 0,
		IsBlocked:    false,
		CreatedAt:    time.Now().UTC(),
		BlockedUsers: []string{},
	}

	users = append(users, user)
	s.store.Save(ctx, storage.KeyUsers, users)
	s.setSession(ctx, user)

	s.logger.Info().Str("username", user.Username).Bool("admin", user.IsAdmin).Msg("identity registered")

	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, ErrValidation
	}

	for _, user := range s.loadUsers(ctx) {
		if user.Username != req.Username || user.Password != req.Password {
			continue
		}
		if user.IsBlocked {
			return models.User{}, ErrAccountBlocked
		}
		s.setSession(ctx, user)
		return user, nil
	}

	return models.User{}, ErrInvalidCredential
}

func (s *authService) Logout(ctx context.Context) {
	s.store.Remove(ctx, storage.KeyCurrentUser)
}

func (s *authService) CurrentUser(ctx context.Context) (models.User, bool) {
	var user models.User
	if !s.store.Load(ctx, storage.KeyCurrentUser, &user) {
		return models.User{}, false
	}
	return user, true
}

func (s *authService) Users(ctx context.Context) []models.User {
	return s.loadUsers(ctx)
}

func (s *authService) UserByID(ctx context.Context, id string) (models.User, bool) {
	for _, user := range s.loadUsers(ctx) {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

func (s *authService) UserByUsername(ctx context.Context, username string) (models.User, bool) {
	for _, user := range s.loadUsers(ctx) {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

func (s *authService) UpdateUsername(ctx context.Context, userID, newUsername string) (models.User, error) {
	newUsername = strings.TrimSpace(newUsername)
	if newUsername == "" {
		return models.User{}, ErrValidation
	}

	users := s.loadUsers(ctx)
	for _, existing := range users {
		if existing.ID != userID && existing.Username == newUsername {
			return models.User{}, ErrDuplicateUsername
		}
	}

	updated, ok := s.mutateUser(ctx, users, userID, func(user *models.User) {
		user.Username = newUsername
	})
	if !ok {
		return models.User{}, ErrNotFound
	}

	return updated, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrValidation
	}

	users := s.loadUsers(ctx)
	target, ok := findByID(users, userID)
	if !ok {
		return ErrNotFound
	}
	if target.Password != currentPassword {
		return ErrInvalidCredential
	}

	if _, ok := s.mutateUser(ctx, users, userID, func(user *models.User) {
		user.Password = newPassword
	}); !ok {
		return ErrNotFound
	}

	return nil
}

func (s *authService) UpdateUserRole(ctx context.Context, actorID, username string, isAdmin bool) error {
	users := s.loadUsers(ctx)
	if err := requireAdmin(users, actorID); err != nil {
		return err
	}

	target, ok := findByUsername(users, username)
	if !ok {
		return ErrNotFound
	}

	if _, ok := s.mutateUser(ctx, users, target.ID, func(user *models.User) {
		user.IsAdmin = isAdmin
	}); !ok {
		return ErrNotFound
	}

	return nil
}

func (s *authService) SetUserBlocked(ctx context.Context, actorID, username string, blocked bool) error {
	users := s.loadUsers(ctx)
	if err := requireAdmin(users, actorID); err != nil {
		return err
	}

	target, ok := findByUsername(users, username)
	if !ok {
		return ErrNotFound
	}

	if _, ok := s.mutateUser(ctx, users, target.ID, func(user *models.User) {
		user.IsBlocked = blocked
	}); !ok {
		return ErrNotFound
	}

	// Blocking the active identity forces its logout.
	if blocked {
		if session, exists := s.CurrentUser(ctx); exists && session.Username == username {
			s.Logout(ctx)
		}
	}

	return nil
}

func (s *authService) EditUser(ctx context.Context, actorID, targetID string, req dto.EditUserRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, ErrValidation
	}

	users := s.loadUsers(ctx)
	if err := requireAdmin(users, actorID); err != nil {
		return models.User{}, err
	}

	var newUsername string
	if req.Username != nil {
		newUsername = strings.TrimSpace(*req.Username)
		if len(newUsername) < 2 {
			return models.User{}, ErrValidation
		}
		for _, existing := range users {
			if existing.ID != targetID && existing.Username == newUsername {
				return models.User{}, ErrDuplicateUsername
			}
		}
	}

	updated, ok := s.mutateUser(ctx, users, targetID, func(user *models.User) {
		if req.RealName != nil {
			user.RealName = strings.TrimSpace(s.sanitizer.Sanitize(*req.RealName))
		}
		if req.Username != nil {
			user.Username = newUsername
		}
		if req.Password != nil {
			user.Password = *req.Password
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}
	})
	if !ok {
		return models.User{}, ErrNotFound
	}

	return updated, nil
}

func (s *authService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	users := s.loadUsers(ctx)
	if err := requireAdmin(users, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return ErrSelfDeletion
	}

	remaining := make([]models.User, 0, len(users))
	found := false
	for _, user := range users {
		if user.ID == targetID {
			found = true
			continue
		}
		remaining = append(remaining, user)
	}
	if !found {
		return ErrNotFound
	}

	s.store.Save(ctx, storage.KeyUsers, remaining)
	s.logger.Info().Str("target_id", targetID).Msg("identity deleted")

	return nil
}

func (s *authService) SetBlockedList(ctx context.Context, userID string, blocked []string) (models.User, error) {
	users := s.loadUsers(ctx)
	updated, ok := s.mutateUser(ctx, users, userID, func(user *models.User) {
		user.BlockedUsers = blocked
	})
	if !ok {
		return models.User{}, ErrNotFound
	}
	return updated, nil
}

func (s *authService) NotificationPreferences(ctx context.Context) models.NotificationPreferences {
	preferences := models.DefaultNotificationPreferences()
	s.store.Load(ctx, storage.KeyNotificationPreferences, &preferences)
	return preferences
}

func (s *authService) UpdateNotificationPreferences(ctx context.Context, req dto.NotificationPreferencesRequest) models.NotificationPreferences {
	preferences := s.NotificationPreferences(ctx)

	if req.MessagingNotifications != nil {
		preferences.MessagingNotifications = *req.MessagingNotifications
	}
	if req.CommunityNotifications != nil {
		preferences.CommunityNotifications = *req.CommunityNotifications
	}
	if req.PollNotifications != nil {
		preferences.PollNotifications = *req.PollNotifications
	}
	if req.EmailNotifications != nil {
		preferences.EmailNotifications = *req.EmailNotifications
	}
	if req.SoundEnabled != nil {
		preferences.SoundEnabled = *req.SoundEnabled
	}

	s.store.Save(ctx, storage.KeyNotificationPreferences, preferences)

	return preferences
}

// mutateUser applies the mutation to the directory entry with the given id,
// persists the directory, and keeps the session snapshot in sync when it
// points at the same identity.
func (s *authService) mutateUser(ctx context.Context, users []models.User, userID string, mutate func(*models.User)) (models.User, bool) {
	var updated models.User
	found := false

	for i := range users {
		if users[i].ID != userID {
			continue
		}
		mutate(&users[i])
		updated = users[i]
		found = true
		break
	}
	if !found {
		return models.User{}, false
	}

	s.store.Save(ctx, storage.KeyUsers, users)

	if session, exists := s.CurrentUser(ctx); exists && session.ID == userID {
		s.setSession(ctx, updated)
	}

	return updated, true
}

func (s *authService) setSession(ctx context.Context, user models.User) {
	s.store.Save(ctx, storage.KeyCurrentUser, user)
}

func (s *authService) loadUsers(ctx context.Context) []models.User {
	users := []models.User{}
	s.store.Load(ctx, storage.KeyUsers, &users)
	return users
}

func findByID(users []models.User, id string) (models.User, bool) {
	for _, user := range users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

func findByUsername(users []models.User, username string) (models.User, bool) {
	for _, user := range users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

func requireAdmin(users []models.User, actorID string) error {
	actor, ok := findByID(users, actorID)
	if !ok || !actor.IsAdmin {
		return ErrPermissionDenied
	}
	return nil
}
