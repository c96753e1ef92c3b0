package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BillingInterval for membership plans.
const (
	IntervalWeek  = "week"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// ValidBillingInterval reports whether s is a supported billing interval.
func ValidBillingInterval(s string) bool {
	return s == IntervalWeek || s == IntervalMonth || s == IntervalYear
}

// MembershipPlan is a billing template subscriptions reference.
type MembershipPlan struct {
	ID               uuid.UUID       `json:"id"`
	OrganizationID   uuid.UUID       `json:"organization_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	PriceCents       int             `json:"price_cents"`
	Currency         string          `json:"currency"`
	BillingInterval  string          `json:"billing_interval"`
	Features         json.RawMessage `json:"features,omitempty"`
	IsActive         bool            `json:"is_active"`
	ExternalPriceRef string          `json:"external_price_ref,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
