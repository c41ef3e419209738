package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationAccepted  RegistrationStatus = "accepted"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

type Registration struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registration_event_user,priority:1" json:"event_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registration_event_user,priority:2;index" json:"user_id"`
	Status    RegistrationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
