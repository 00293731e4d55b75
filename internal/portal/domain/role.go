package domain

// Portal roles. The profile row is the authoritative source; the role claim
// inside an access token is a cache that can go stale until the next login.
const (
	RoleAdmin     = "admin"
	RoleCommittee = "committee"
	RoleResident  = "resident"
)

// Scopes gating the HTTP API. Derived from the role at token issue time.
const (
	ScopePortalRead  = "portal:read"
	ScopePortalWrite = "portal:write"
	ScopeAdminRead   = "admin:read"
	ScopeAdminWrite  = "admin:write"
)

// ScopesForRole maps a role to the scopes its tokens carry. Admin is a
// superset of committee; residents get read access only.
func ScopesForRole(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{ScopePortalRead, ScopePortalWrite, ScopeAdminRead, ScopeAdminWrite}
	case RoleCommittee:
		return []string{ScopePortalRead, ScopePortalWrite}
	case RoleResident:
		return []string{ScopePortalRead}
	default:
		return nil
	}
}

// ValidRole reports whether role is one of the three portal roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCommittee || role == RoleResident
}
