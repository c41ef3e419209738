package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

const (
	ReportActionNone          = "none"
	ReportActionDeleteContent = "delete_content"
)

var ErrReportTarget = errors.New("report must reference exactly one of post or comment")

// Report flags a post or a comment (never both) for the moderators of the
// channel it is routed to.
type Report struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	PostID     *uuid.UUID   `gorm:"type:uuid;index" json:"post_id,omitempty"`
	CommentID  *uuid.UUID   `gorm:"type:uuid;index" json:"comment_id,omitempty"`
	ChannelID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"channel_id"`
	Reason     string       `gorm:"not null;size:500" json:"reason"`
	Status     ReportStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	HandledBy  *uuid.UUID   `gorm:"type:uuid" json:"handled_by,omitempty"`
	Action     string       `gorm:"size:50" json:"action,omitempty"`
	AdminNote  string       `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if (r.PostID == nil) == (r.CommentID == nil) {
		return ErrReportTarget
	}
	ensureID(&r.ID)
	return nil
}
