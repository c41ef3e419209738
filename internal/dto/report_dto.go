package dto

import "github.com/google/uuid"

// CreateReportRequest must reference exactly one of Post and Comment.
type CreateReportRequest struct {
	Post    *uuid.UUID `json:"post"`
	Comment *uuid.UUID `json:"comment"`
	Channel *uuid.UUID `json:"channel"`
	Reason  string     `json:"reason" validate:"required"`
}

type HandleReportRequest struct {
	Status    string `json:"status" validate:"required,oneof=resolved rejected"`
	Action    string `json:"action" validate:"omitempty,oneof=none delete_content"`
	AdminNote string `json:"admin_note" validate:"max=1000"`
}
