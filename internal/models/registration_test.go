package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancelableByAdmin(t *testing.T) {
	assert.True(t, CancelableByAdmin(RegistrationStatusConfirmed))
	assert.True(t, CancelableByAdmin(RegistrationStatusWaitlisted))
	assert.False(t, CancelableByAdmin(RegistrationStatusAttended))
	assert.False(t, CancelableByAdmin(RegistrationStatusCanceledByAdmin))
}

func TestCountsTowardAttendance(t *testing.T) {
	assert.True(t, CountsTowardAttendance(RegistrationStatusConfirmed))
	assert.True(t, CountsTowardAttendance(RegistrationStatusAttended))
	assert.False(t, CountsTowardAttendance(RegistrationStatusWaitlisted))
	assert.False(t, CountsTowardAttendance(RegistrationStatusCanceledByAdmin))
}

func TestValidRegistrationStatus(t *testing.T) {
	for _, s := range []string{"confirmed", "waitlisted", "canceled_by_admin", "attended"} {
		assert.True(t, ValidRegistrationStatus(s), s)
	}
	assert.False(t, ValidRegistrationStatus("cancelled"))
	assert.False(t, ValidRegistrationStatus(""))
}

func TestValidMemberStatus(t *testing.T) {
	for _, s := range []string{"active", "pending", "inactive", "cancelled"} {
		assert.True(t, ValidMemberStatus(s), s)
	}
	assert.False(t, ValidMemberStatus("canceled"))
	assert.False(t, ValidMemberStatus(""))
}

func TestValidSubscriptionStatus(t *testing.T) {
	for _, s := range []string{"active", "canceled", "past_due", "incomplete", "trialing"} {
		assert.True(t, ValidSubscriptionStatus(s), s)
	}
	assert.False(t, ValidSubscriptionStatus("paused"))
}
