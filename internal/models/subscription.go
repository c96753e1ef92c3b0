package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus values (closed set).
const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusIncomplete = "incomplete"
	SubscriptionStatusTrialing   = "trialing"
)

// ValidSubscriptionStatus reports whether s is a known subscription status.
func ValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCanceled, SubscriptionStatusPastDue,
		SubscriptionStatusIncomplete, SubscriptionStatusTrialing:
		return true
	}
	return false
}

// Subscription enrolls a user in a membership plan with a billing period.
type Subscription struct {
	ID                 uuid.UUID `json:"id"`
	OrganizationID     uuid.UUID `json:"organization_id"`
	UserID             uuid.UUID `json:"user_id"`
	PlanID             uuid.UUID `json:"plan_id"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
