package handlers

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReactionHandler struct {
	ledger *services.ReactionLedger
}

func NewReactionHandler(ledger *services.ReactionLedger) *ReactionHandler {
	return &ReactionHandler{ledger: ledger}
}

func (h *ReactionHandler) React(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.ReactionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	reaction, err := h.ledger.React(c.UserContext(), actor, reactionKey(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reaction)
}

func (h *ReactionHandler) Toggle(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.ReactionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	reaction, active, err := h.ledger.Toggle(c.UserContext(), actor, reactionKey(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToggleReactionResponse{Active: active, Reaction: reaction})
}

// DeleteByID serves DELETE /reaction/:id.
func (h *ReactionHandler) DeleteByID(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	reactionID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.ledger.UnreactByID(c.UserContext(), actor, reactionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Reaction removed"})
}

// Delete serves DELETE /reaction?target_type=&target_id=&type=.
func (h *ReactionHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	targetID, err := queryUUID(c, "target_id")
	if err != nil {
		return respondError(c, err)
	}
	reactionType := c.Query("type")
	if reactionType == "" {
		return respondError(c, apperrors.InvalidInput("type is required"))
	}

	key := services.ReactionKey{
		TargetType: models.TargetType(c.Query("target_type")),
		TargetID:   targetID,
		Type:       reactionType,
	}
	if err := h.ledger.Unreact(c.UserContext(), actor, key); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Reaction removed"})
}

// Counts serves GET /reaction?target_type=&target_id=.
func (h *ReactionHandler) Counts(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	targetID, err := queryUUID(c, "target_id")
	if err != nil {
		return respondError(c, err)
	}

	counts, err := h.ledger.Counts(c.UserContext(), actor, models.TargetType(c.Query("target_type")), targetID)
	if err != nil {
		return respondError(c, err)
	}
	if counts == nil {
		counts = []services.ReactionCount{}
	}
	return c.JSON(counts)
}

func reactionKey(req dto.ReactionRequest) services.ReactionKey {
	return services.ReactionKey{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Type:       req.Type,
	}
}
