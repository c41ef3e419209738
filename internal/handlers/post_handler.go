package handlers

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	posts    *services.PostService
	gate     *services.ModerationGate
	channels *services.ChannelService
}

func NewPostHandler(posts *services.PostService, gate *services.ModerationGate, channels *services.ChannelService) *PostHandler {
	return &PostHandler{posts: posts, gate: gate, channels: channels}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.Create(c.UserContext(), actor, services.SubmitPostInput{
		ChannelID: req.Channel,
		Content:   req.Content,
		Image:     req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// List serves GET /post?channel=.
func (h *PostHandler) List(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	channelID, err := queryUUID(c, "channel")
	if err != nil {
		return respondError(c, err)
	}

	posts, err := h.channels.GetPostsForChannel(c.UserContext(), actor, channelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.channels.GetPost(c.UserContext(), actor, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdatePostRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.Update(c.UserContext(), actor, postID, services.UpdatePostInput{
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.posts.Delete(c.UserContext(), actor, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Approve(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.gate.Approve(c.UserContext(), actor, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Reject(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.gate.Reject(c.UserContext(), actor, postID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post rejected"})
}

// Pending serves GET /post/pending?channel= for moderators.
func (h *PostHandler) Pending(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	channelID, err := queryUUID(c, "channel")
	if err != nil {
		return respondError(c, err)
	}

	posts, err := h.posts.ListPending(c.UserContext(), actor, channelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
