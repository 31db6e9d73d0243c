package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// PollHandler serves the weekly poll endpoints.
type PollHandler struct {
	service service.PollService
	auth    service.AuthService
	logger  zerolog.Logger
}

// NewPollHandler constructs the handler.
func NewPollHandler(service service.PollService, auth service.AuthService, logger zerolog.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		auth:    auth,
		logger:  logger.With().Str("component", "poll_handler").Logger(),
	}
}

// Register wires the poll routes.
func (h *PollHandler) Register(router fiber.Router) {
	router.Get("/current", h.current)
	router.Get("/history", h.history)
	router.Get("/next-date", h.nextDate)
	router.Post("/vote", h.vote)
}

// RegisterAdmin wires the poll administration routes.
func (h *PollHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/current", h.reset)
}

func (h *PollHandler) current(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	poll, ok := h.service.Current(c.UserContext())
	if !ok {
		return utils.SendSuccess(c, "no poll running", fiber.Map{"poll": nil, "hasVoted": false})
	}

	return utils.SendSuccess(c, "poll retrieved", fiber.Map{
		"poll":     poll,
		"hasVoted": poll.HasVoted(user.Username),
	})
}

func (h *PollHandler) history(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "poll history retrieved", h.service.History(c.UserContext()))
}

func (h *PollHandler) nextDate(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "next poll date retrieved", fiber.Map{
		"nextPollDate": h.service.NextPollDate(c.UserContext()),
	})
}

func (h *PollHandler) vote(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	poll, err := h.service.Vote(c.UserContext(), user, req.ItemID)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "vote recorded", poll)
}

func (h *PollHandler) create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.CreatePollRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	poll, err := h.service.CreatePoll(c.UserContext(), actor, req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	requestLogger(h.logger, c).Info().Str("title", poll.Title).Msg("poll created")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "poll created", poll)
}

func (h *PollHandler) reset(c *fiber.Ctx) error {
	actor, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.ResetCurrentPoll(c.UserContext(), actor); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "poll reset", nil)
}
