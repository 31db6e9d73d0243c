package handler_test

import (
	"context"
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

type mockPollService struct {
	current *models.Poll
	history []models.Poll
	voteErr error
}

func (m *mockPollService) Current(context.Context) (models.Poll, bool) {
	if m.current == nil {
		return models.Poll{}, false
	}
	return *m.current, true
}

func (m *mockPollService) History(context.Context) []models.Poll {
	return m.history
}

func (m *mockPollService) HasVoted(_ context.Context, username string) bool {
	return m.current != nil && m.current.HasVoted(username)
}

func (m *mockPollService) Vote(_ context.Context, user models.User, itemID string) (models.Poll, error) {
	if m.voteErr != nil {
		return models.Poll{}, m.voteErr
	}
	if m.current == nil {
		return models.Poll{}, service.ErrNotFound
	}
	for i := range m.current.Items {
		if m.current.Items[i].ID == itemID {
			m.current.Items[i].Votes = append(m.current.Items[i].Votes, user.Username)
			return *m.current, nil
		}
	}
	return models.Poll{}, service.ErrNotFound
}

func (m *mockPollService) CreatePoll(_ context.Context, actor models.User, req dto.CreatePollRequest) (models.Poll, error) {
	if !actor.IsAdmin {
		return models.Poll{}, service.ErrPermissionDenied
	}
	poll := models.Poll{Title: req.Title, EndDate: req.EndDate}
	m.current = &poll
	return poll, nil
}

func (m *mockPollService) ResetCurrentPoll(_ context.Context, actor models.User) error {
	if !actor.IsAdmin {
		return service.ErrPermissionDenied
	}
	if m.current == nil {
		return service.ErrNotFound
	}
	m.history = append(m.history, *m.current)
	m.current = nil
	return nil
}

func (m *mockPollService) NextPollDate(context.Context) time.Time {
	if m.current != nil {
		return m.current.EndDate
	}
	return time.Now()
}

func (m *mockPollService) ExpireIfEnded(context.Context) bool { return false }

func (m *mockPollService) Run(context.Context, time.Duration) {}

func newPollApp(svc service.PollService, auth service.AuthService, user models.User) *fiber.App {
	app := fiber.New()
	h := handler.NewPollHandler(svc, auth, testLogger())
	group := app.Group("/api/v1/polls", authAs(user))
	h.Register(group)
	h.RegisterAdmin(group)
	return app
}

func TestPollHandler_CurrentWithoutPoll(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice"}
	auth := &mockAuthService{users: []models.User{alice}}
	app := newPollApp(&mockPollService{}, auth, alice)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/polls/current", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data struct {
			Poll     *models.Poll `json:"poll"`
			HasVoted bool         `json:"hasVoted"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Nil(t, response.Data.Poll)
	require.False(t, response.Data.HasVoted)
}

func TestPollHandler_CurrentReportsVoteState(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice"}
	auth := &mockAuthService{users: []models.User{alice}}
	svc := &mockPollService{current: &models.Poll{
		Title: "Song of the week",
		Items: []models.PollItem{{ID: "i1", Title: "Option A", Votes: []string{"alice"}}},
	}}
	app := newPollApp(svc, auth, alice)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/polls/current", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data struct {
			Poll     *models.Poll `json:"poll"`
			HasVoted bool         `json:"hasVoted"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.NotNil(t, response.Data.Poll)
	require.True(t, response.Data.HasVoted)
}

func TestPollHandler_Vote(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice"}
	auth := &mockAuthService{users: []models.User{alice}}
	svc := &mockPollService{current: &models.Poll{
		Title: "Song of the week",
		Items: []models.PollItem{{ID: "i1", Title: "Option A"}},
	}}
	app := newPollApp(svc, auth, alice)

	req := jsonRequest(t, http.MethodPost, "/api/v1/polls/vote", dto.VoteRequest{ItemID: "i1"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"alice"}, svc.current.Items[0].Votes)
}

func TestPollHandler_VoteWithoutPoll(t *testing.T) {
	alice := models.User{ID: "u1", Username: "alice"}
	auth := &mockAuthService{users: []models.User{alice}}
	app := newPollApp(&mockPollService{}, auth, alice)

	req := jsonRequest(t, http.MethodPost, "/api/v1/polls/vote", dto.VoteRequest{ItemID: "i1"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPollHandler_CreateRequiresAdmin(t *testing.T) {
	bob := models.User{ID: "u2", Username: "bob"}
	auth := &mockAuthService{users: []models.User{bob}}
	app := newPollApp(&mockPollService{}, auth, bob)

	req := jsonRequest(t, http.MethodPost, "/api/v1/polls", dto.CreatePollRequest{
		Title:   "Song of the week",
		EndDate: time.Now().Add(time.Hour),
		Items:   []dto.PollItemRequest{{Title: "A"}, {Title: "B"}},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPollHandler_ResetArchives(t *testing.T) {
	admin := models.User{ID: "u1", Username: "alice", IsAdmin: true}
	auth := &mockAuthService{users: []models.User{admin}}
	svc := &mockPollService{current: &models.Poll{Title: "Song of the week"}}
	app := newPollApp(svc, auth, admin)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/v1/polls/current", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.current)
	require.Len(t, svc.history, 1)
}
