package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is the discussion space of an approved event (one per event).
type Channel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	Name      string    `gorm:"size:200" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
