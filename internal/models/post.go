package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
)

// Post is channel content. Removal by author or moderator is a soft delete
// (IsDeleted/DeletedAt); a rejected pending post is removed outright.
type Post struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChannelID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_posts_channel_created,priority:1" json:"channel_id"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Image      string     `gorm:"size:1024" json:"image,omitempty"`
	Status     PostStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	IsDeleted  bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index:idx_posts_channel_created,priority:2" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
