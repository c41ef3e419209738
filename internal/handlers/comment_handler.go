package handlers

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	comments *services.CommentService
	channels *services.ChannelService
}

func NewCommentHandler(comments *services.CommentService, channels *services.ChannelService) *CommentHandler {
	return &CommentHandler{comments: comments, channels: channels}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := h.comments.Create(c.UserContext(), actor, services.CreateCommentInput{
		PostID:   req.Post,
		ParentID: req.Parent,
		Content:  req.Content,
		Image:    req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// List serves GET /comment/:postId.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "postId")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.channels.GetComments(c.UserContext(), actor, postID)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []services.CommentView{}
	}
	return c.JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	commentID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := h.comments.Update(c.UserContext(), actor, commentID, services.UpdateCommentInput{
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	commentID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.comments.Delete(c.UserContext(), actor, commentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}
