package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pendingInvitation(expiresIn time.Duration) *TenantInvitation {
	return &TenantInvitation{
		Status:    InvitationStatusPending,
		ExpiredAt: time.Now().Add(expiresIn),
	}
}

func TestInvitationIsValid(t *testing.T) {
	assert.True(t, pendingInvitation(time.Hour).IsValid())
	assert.False(t, pendingInvitation(-time.Hour).IsValid())

	accepted := pendingInvitation(time.Hour)
	accepted.Accept()
	assert.False(t, accepted.IsValid())
}

func TestInvitationAccept(t *testing.T) {
	invitation := pendingInvitation(time.Hour)
	invitation.Accept()

	assert.Equal(t, InvitationStatusAccepted, invitation.Status)
	assert.NotNil(t, invitation.AcceptedAt)
}

func TestInvitationReject(t *testing.T) {
	invitation := pendingInvitation(time.Hour)
	invitation.Reject()

	assert.Equal(t, InvitationStatusRejected, invitation.Status)
	assert.NotNil(t, invitation.RejectedAt)
}

func TestInvitationMarkExpired(t *testing.T) {
	invitation := pendingInvitation(-time.Hour)
	invitation.MarkExpired()

	assert.Equal(t, InvitationStatusExpired, invitation.Status)
	assert.False(t, invitation.IsValid())
}
