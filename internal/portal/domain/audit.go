package domain

import "time"

// Audit action tags. Every security-relevant operation writes exactly one
// entry with one of these tags.
const (
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionPasswordChange  = "password_change"
	ActionCreateProject   = "create_project"
	ActionUpdateProject   = "update_project"
	ActionAddExpense      = "add_expense"
	ActionApproveExpense  = "approve_expense"
	ActionCreateNotice    = "create_notice"
	ActionUpdateProfile   = "update_profile"
	ActionApproveResident = "approve_resident"
	ActionRejectResident  = "reject_resident"
	ActionResetPassword   = "reset_password"
	ActionCreateAccount   = "create_account"
	ActionUploadDocument  = "upload_document"
)

// AnonymousActor is recorded when no principal is cached for the action.
const AnonymousActor = "anonymous"

// AuditEntry is an immutable record of a security-relevant action. The
// application only ever inserts and reads these rows.
type AuditEntry struct {
	ID           string
	UserID       string
	UserEmail    string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
	IPAddress    string
	CreatedAt    time.Time
}

// AuditFilter narrows an audit log listing. Every field is optional and
// composable; the zero value means "no filter on that dimension".
type AuditFilter struct {
	Action       string
	UserEmail    string // substring match
	ResourceType string
	From         *time.Time // inclusive
	To           *time.Time // inclusive
	Limit        int        // default 100
}
