package domain

import "time"

// InvitationTTL is how long an invitation stays actionable.
const InvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID             string
	OrganizationID string
	Email          string
	Role           Role
	TokenHash      string
	InvitedBy      string
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	AcceptedBy     string
	CreatedAt      time.Time
}

type InvitationState string

const (
	InvitationPending  InvitationState = "pending"
	InvitationAccepted InvitationState = "accepted"
	InvitationExpired  InvitationState = "expired"
)

// State reports the invitation state at now. Acceptance wins over expiry.
func (i Invitation) State(now time.Time) InvitationState {
	switch {
	case i.AcceptedAt != nil:
		return InvitationAccepted
	case !i.ExpiresAt.After(now):
		return InvitationExpired
	default:
		return InvitationPending
	}
}

// InvitationPreview is what an invitee sees before accepting.
type InvitationPreview struct {
	OrganizationName string
	Email            string
	Role             Role
	ExpiresAt        time.Time
}
