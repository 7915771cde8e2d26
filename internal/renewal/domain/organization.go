package domain

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Privileged roles may invite, list and revoke invitations.
func (r Role) Privileged() bool { return r == RoleOwner || r == RoleAdmin }

type Organization struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Member struct {
	OrganizationID string
	UserID         string
	Email          string
	Role           Role
	CreatedAt      time.Time
}

// Membership is an organization as seen by one of its members.
type Membership struct {
	Organization Organization
	Role         Role
}

// Tenant is the caller of a core operation. It is passed explicitly rather
// than read from shared state.
type Tenant struct {
	UserID         string
	Email          string
	OrganizationID string // empty when acting personally
	Role           Role   // role within OrganizationID
}

func (t Tenant) InOrganization() bool { return t.OrganizationID != "" }

func (t Tenant) IsAdmin() bool { return t.InOrganization() && t.Role.Privileged() }
