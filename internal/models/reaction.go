package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// ReactionTypes lists the accepted reaction kinds.
var ReactionTypes = []string{"like", "love", "haha", "wow", "sad", "thanks"}

// Reaction is a ledger row. The unique index on (user, target, type) makes a
// second insert for the same key impossible; writers upsert instead.
type Reaction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_key,priority:1" json:"user_id"`
	TargetType TargetType `gorm:"size:20;not null;uniqueIndex:idx_reaction_key,priority:2;index:idx_reaction_target,priority:1" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_key,priority:3;index:idx_reaction_target,priority:2" json:"target_id"`
	Type       string     `gorm:"size:20;not null;uniqueIndex:idx_reaction_key,priority:4" json:"type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func IsReactionType(t string) bool {
	for _, rt := range ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}
