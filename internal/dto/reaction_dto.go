package dto

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
)

type ReactionRequest struct {
	TargetType models.TargetType `json:"target_type" validate:"required,oneof=post comment"`
	TargetID   uuid.UUID         `json:"target_id" validate:"required"`
	Type       string            `json:"type" validate:"required"`
}

type ToggleReactionResponse struct {
	Active   bool             `json:"active"`
	Reaction *models.Reaction `json:"reaction,omitempty"`
}
