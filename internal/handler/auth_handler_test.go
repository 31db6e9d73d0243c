package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/handler"
	"github.com/rooby-labs/konexa-go-api/internal/models"
	"github.com/rooby-labs/konexa-go-api/internal/service"
)

func newAuthApp(auth service.AuthService) *fiber.App {
	tokens := service.NewTokenIssuer("test-secret", time.Hour)
	app := fiber.New()
	h := handler.NewAuthHandler(auth, tokens, testLogger())
	h.Register(app.Group("/api/v1/auth"))
	return app
}

func TestAuthHandler_RegisterReturnsTokenAndUser(t *testing.T) {
	auth := &mockAuthService{}
	app := newAuthApp(auth)

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Password: "secret",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.NotEmpty(t, response.Data.Token)
	require.Equal(t, "alice", response.Data.User.Username)
	require.True(t, response.Data.User.IsAdmin)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	auth := &mockAuthService{registerErr: service.ErrDuplicateUsername}
	app := newAuthApp(auth)

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Password: "secret",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "bad credentials", err: service.ErrInvalidCredential, statusCode: fiber.StatusUnauthorized},
		{name: "blocked", err: service.ErrAccountBlocked, statusCode: fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuthService{loginErr: tc.err}
			app := newAuthApp(auth)

			req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
				Username: "alice",
				Password: "wrong",
			})

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAuthHandler_MeResolvesFromDirectory(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice", IsAdmin: true}
	auth := &mockAuthService{users: []models.User{alice}}
	tokens := service.NewTokenIssuer("test-secret", time.Hour)

	app := fiber.New()
	h := handler.NewAuthHandler(auth, tokens, testLogger())
	h.RegisterProtected(app.Group("/api/v1/auth", authAs(alice)))

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "alice", response.Data.Username)
}

func TestAuthHandler_MeRejectsUnknownIdentity(t *testing.T) {
	ghost := models.User{ID: "gone", Username: "ghost"}
	auth := &mockAuthService{}
	tokens := service.NewTokenIssuer("test-secret", time.Hour)

	app := fiber.New()
	h := handler.NewAuthHandler(auth, tokens, testLogger())
	h.RegisterProtected(app.Group("/api/v1/auth", authAs(ghost)))

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_UpdateUsernameReturnsFreshToken(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice"}
	auth := &mockAuthService{users: []models.User{alice}}
	tokens := service.NewTokenIssuer("test-secret", time.Hour)

	app := fiber.New()
	h := handler.NewAuthHandler(auth, tokens, testLogger())
	h.RegisterProtected(app.Group("/api/v1/auth", authAs(alice)))

	req := jsonRequest(t, http.MethodPut, "/api/v1/auth/me/username", dto.UpdateUsernameRequest{Username: "alicia"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "alicia", response.Data.User.Username)
	require.NotEmpty(t, response.Data.Token)
}
