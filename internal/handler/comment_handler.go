package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/service"
	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// CommentHandler serves the rating and comment endpoints.
type CommentHandler struct {
	service service.CommentService
	auth    service.AuthService
	logger  zerolog.Logger
}

// NewCommentHandler constructs the handler.
func NewCommentHandler(service service.CommentService, auth service.AuthService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		auth:    auth,
		logger:  logger.With().Str("component", "comment_handler").Logger(),
	}
}

// Register wires the comment routes.
func (h *CommentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.add)
	router.Get("/summary", h.summary)
	router.Get("/mine", h.mine)
	router.Post("/:id/like", h.like)
	router.Delete("/:id", h.remove)
}

// RegisterAdmin wires the comment moderation routes.
func (h *CommentHandler) RegisterAdmin(router fiber.Router) {
	router.Put("/:id/approve", h.approve)
}

func (h *CommentHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "comments retrieved", h.service.Comments(c.UserContext()))
}

// add rejects a second comment from the same identity before delegating.
func (h *CommentHandler) add(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if _, exists := h.service.UserComment(c.UserContext(), user.ID); exists {
		return utils.SendError(c, fiber.StatusConflict, "you have already left a comment")
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	comment, err := h.service.AddComment(c.UserContext(), user, req)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment added", comment)
}

func (h *CommentHandler) summary(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "comment summary retrieved", h.service.Summary(c.UserContext()))
}

func (h *CommentHandler) mine(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	comment, exists := h.service.UserComment(c.UserContext(), user.ID)
	if !exists {
		return utils.SendSuccess(c, "no comment yet", nil)
	}

	return utils.SendSuccess(c, "comment retrieved", comment)
}

func (h *CommentHandler) like(c *fiber.Ctx) error {
	comment, err := h.service.LikeComment(c.UserContext(), c.Params("id"))
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "comment liked", comment)
}

func (h *CommentHandler) remove(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	if err := h.service.DeleteComment(c.UserContext(), c.Params("id"), user.ID, user.IsAdmin); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "comment deleted", nil)
}

func (h *CommentHandler) approve(c *fiber.Ctx) error {
	user, err := actorFromContext(c, h.auth)
	if err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	var req dto.ApproveCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	if err := h.service.ApproveComment(c.UserContext(), c.Params("id"), req.Approved, user.IsAdmin); err != nil {
		status, message := statusForError(err)
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "comment approval updated", nil)
}
