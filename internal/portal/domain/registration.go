package domain

import "time"

// Registration request statuses. A request leaves pending exactly once.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// Permissions granted to an approved resident account.
type Permissions struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// DefaultPermissions is what an approved resident gets unless the approving
// admin says otherwise.
func DefaultPermissions() Permissions {
	return Permissions{Read: true, Write: false}
}

// RegistrationRequest is a flat owner's public request for a portal account.
type RegistrationRequest struct {
	ID          string
	OwnerName   string
	FlatNo      string
	Mobile      string
	Email       string
	Status      string
	Permissions *Permissions // set on approval
	ReviewedBy  string
	ReviewDate  *time.Time
	RequestDate time.Time
}
