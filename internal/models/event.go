package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCancelled EventStatus = "cancelled"
)

// Event is a volunteer activity owned by its organizer. Events are never
// hard-deleted; their lifecycle is carried by Status.
type Event struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Location    string      `gorm:"size:255" json:"location"`
	StartsAt    time.Time   `json:"starts_at"`
	CreatedBy   uuid.UUID   `gorm:"type:uuid;not null;index" json:"created_by"`
	Status      EventStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// EventParticipant is the participant roster of an event. A row exists exactly
// while the user's registration is accepted.
type EventParticipant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_participant,priority:1" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_participant,priority:2;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *EventParticipant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
