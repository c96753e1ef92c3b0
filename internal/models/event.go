package models

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus values.
const (
	EventStatusScheduled = "scheduled"
	EventStatusCanceled  = "canceled"
)

// Event belongs to an organization and is run by an organizer.
type Event struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	OrganizerID    uuid.UUID  `json:"organizer_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location,omitempty"`
	Status         string     `json:"status"`
	Capacity       *int       `json:"capacity,omitempty"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	IsPrivate      bool       `json:"is_private"`
	EventImageID   *uuid.UUID `json:"event_image_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
