package domain

import "time"

// Profile statuses.
const (
	ProfileStatusPending  = "pending"
	ProfileStatusActive   = "active"
	ProfileStatusDisabled = "disabled"
)

// Profile is the portal-facing record for a principal: display data, the
// authoritative role, and committee memberships for committee members.
type Profile struct {
	ID          string // same id as the user row
	Email       string
	DisplayName string
	FlatNo      string
	Mobile      string
	Role        string
	Committees  []string // committee codes (A..G) this member may edit
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	DisplayName *string
	FlatNo      *string
	Mobile      *string
	Role        *string // admin-only
	Committees  *[]string
	Status      *string // admin-only
}
