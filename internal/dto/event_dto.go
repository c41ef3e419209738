package dto

import "time"

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Location    string    `json:"location" validate:"max=255"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
}
