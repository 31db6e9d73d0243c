package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/service"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// authAs simulates the JWT middleware for a fixed identity.
func authAs(user models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		role := "member"
		if user.IsAdmin {
			role = "admin"
		}
		c.Locals("user_role", role)
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// mockAuthService is a directory-backed stub shared by the handler tests.
type mockAuthService struct {
	users       []models.User
	preferences models.NotificationPreferences
	loginErr    error
	registerErr error
}

func (m *mockAuthService) Register(_ context.Context, req dto.RegisterRequest) (models.User, error) {
	if m.registerErr != nil {
		return models.User{}, m.registerErr
	}
	user := models.User{ID: "u-new", Username: req.Username, Password: req.Password, IsAdmin: len(m.users) == 0}
	m.users = append(m.users, user)
	return user, nil
}

func (m *mockAuthService) Login(_ context.Context, req dto.LoginRequest) (models.User, error) {
	if m.loginErr != nil {
		return models.User{}, m.loginErr
	}
	for _, user := range m.users {
		if user.Username == req.Username && user.Password == req.Password {
			return user, nil
		}
	}
	return models.User{}, service.ErrInvalidCredential
}

func (m *mockAuthService) Logout(context.Context) {}

func (m *mockAuthService) CurrentUser(context.Context) (models.User, bool) {
	if len(m.users) == 0 {
		return models.User{}, false
	}
	return m.users[0], true
}

func (m *mockAuthService) Users(context.Context) []models.User {
	return m.users
}

func (m *mockAuthService) UserByID(_ context.Context, id string) (models.User, bool) {
	for _, user := range m.users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

func (m *mockAuthService) UserByUsername(_ context.Context, username string) (models.User, bool) {
	for _, user := range m.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

func (m *mockAuthService) UpdateUsername(_ context.Context, userID, newUsername string) (models.User, error) {
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].Username = newUsername
			return m.users[i], nil
		}
	}
	return models.User{}, service.ErrNotFound
}

func (m *mockAuthService) UpdatePassword(_ context.Context, userID, currentPassword, newPassword string) error {
	for i := range m.users {
		if m.users[i].ID == userID {
			if m.users[i].Password != currentPassword {
				return service.ErrInvalidCredential
			}
			m.users[i].Password = newPassword
			return nil
		}
	}
	return service.ErrNotFound
}

func (m *mockAuthService) UpdateUserRole(_ context.Context, _, username string, isAdmin bool) error {
	for i := range m.users {
		if m.users[i].Username == username {
			m.users[i].IsAdmin = isAdmin
			return nil
		}
	}
	return service.ErrNotFound
}

func (m *mockAuthService) SetUserBlocked(_ context.Context, _, username string, blocked bool) error {
	for i := range m.users {
		if m.users[i].Username == username {
			m.users[i].IsBlocked = blocked
			return nil
		}
	}
	return service.ErrNotFound
}

func (m *mockAuthService) EditUser(_ context.Context, _, targetID string, req dto.EditUserRequest) (models.User, error) {
	for i := range m.users {
		if m.users[i].ID == targetID {
			if req.Username != nil {
				m.users[i].Username = *req.Username
			}
			return m.users[i], nil
		}
	}
	return models.User{}, service.ErrNotFound
}

func (m *mockAuthService) DeleteUser(_ context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return service.ErrSelfDeletion
	}
	for i := range m.users {
		if m.users[i].ID == targetID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

func (m *mockAuthService) SetBlockedList(_ context.Context, userID string, blocked []string) (models.User, error) {
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].BlockedUsers = blocked
			return m.users[i], nil
		}
	}
	return models.User{}, service.ErrNotFound
}

func (m *mockAuthService) NotificationPreferences(context.Context) models.NotificationPreferences {
	return m.preferences
}

func (m *mockAuthService) UpdateNotificationPreferences(_ context.Context, req dto.NotificationPreferencesRequest) models.NotificationPreferences {
	if req.MessagingNotifications != nil {
		m.preferences.MessagingNotifications = *req.MessagingNotifications
	}
	return m.preferences
}
