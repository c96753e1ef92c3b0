package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// MemberStatus is the lifecycle status of a member within an organization.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusPending   MemberStatus = "pending"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusCancelled MemberStatus = "cancelled"
)

// ValidMemberStatus reports whether s is one of the closed member statuses.
func ValidMemberStatus(s string) bool {
	switch MemberStatus(s) {
	case MemberStatusActive, MemberStatusPending, MemberStatusInactive, MemberStatusCancelled:
		return true
	}
	return false
}

// User represents a platform user. Members tracked by an organization are
// users with organization_id set; they may or may not have login credentials.
type User struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Password       string       `json:"-"`
	FullName       string       `json:"full_name"`
	Role           Role         `json:"role"`
	OrganizationID *uuid.UUID   `json:"organization_id,omitempty"`
	Status         MemberStatus `json:"status"`
	Phone          string       `json:"phone,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	ProfileImageID *uuid.UUID   `json:"profile_image_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	FullName       string       `json:"full_name"`
	Role           Role         `json:"role"`
	Status         MemberStatus `json:"status"`
	Phone          string       `json:"phone,omitempty"`
	ProfileImageID *uuid.UUID   `json:"profile_image_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Status:         u.Status,
		Phone:          u.Phone,
		ProfileImageID: u.ProfileImageID,
		CreatedAt:      u.CreatedAt,
	}
}
