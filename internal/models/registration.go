package models

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus values (closed set).
const (
	RegistrationStatusConfirmed       = "confirmed"
	RegistrationStatusWaitlisted      = "waitlisted"
	RegistrationStatusCanceledByAdmin = "canceled_by_admin"
	RegistrationStatusAttended        = "attended"
)

// ValidRegistrationStatus reports whether s is a known registration status.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationStatusConfirmed, RegistrationStatusWaitlisted,
		RegistrationStatusCanceledByAdmin, RegistrationStatusAttended:
		return true
	}
	return false
}

// CountsTowardAttendance reports whether a registration status contributes
// to an event's attendee total (the registrant plus their guests).
func CountsTowardAttendance(status string) bool {
	return status == RegistrationStatusConfirmed || status == RegistrationStatusAttended
}

// CancelableByAdmin reports whether an admin event cancellation transitions
// this registration to canceled_by_admin. Attended and already-canceled
// registrations keep their status.
func CancelableByAdmin(status string) bool {
	return status == RegistrationStatusConfirmed || status == RegistrationStatusWaitlisted
}

// EventRegistration links a user to an event.
type EventRegistration struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	GuestsCount int       `json:"guests_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
