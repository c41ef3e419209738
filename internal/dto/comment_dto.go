package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	Post    uuid.UUID  `json:"post" validate:"required"`
	Parent  *uuid.UUID `json:"parent"`
	Content string     `json:"content" validate:"required"`
	Image   string     `json:"image"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content"`
	Image   *string `json:"image"`
}
