package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant. Each organization is administered by
// exactly one user; every tenant-owned row carries the organization ID.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	AdminUserID uuid.UUID `json:"admin_user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
