package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Channel uuid.UUID `json:"channel" validate:"required"`
	Content string    `json:"content" validate:"required"`
	Image   string    `json:"image"`
}

// UpdatePostRequest leaves nil fields untouched.
type UpdatePostRequest struct {
	Content *string `json:"content"`
	Image   *string `json:"image"`
}
