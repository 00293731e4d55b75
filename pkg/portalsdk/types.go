package portalsdk

import "time"

// ErrorResponse is the portal's standard error envelope as it appears on the
// wire. Client code should work with APIError from errors.go instead.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest carries the credentials for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries the opaque refresh token for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned from login and refresh.
type TokenResponse struct {
	// AccessToken is the JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// SessionID identifies the server-side session behind the tokens
	SessionID string `json:"session_id"`
}

// SessionStatusResponse is returned by the session liveness probe.
type SessionStatusResponse struct {
	Active bool `json:"active"`
}

// ChangePasswordRequest for POST /v1/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ============================================================================
// Profile Types
// ============================================================================

// Profile is the member record as served by the API.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	FlatNo      string    `json:"flat_no,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	Role        string    `json:"role"`
	Committees  []string  `json:"committees,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdateRequest carries a partial profile edit. Omitted fields are
// left unchanged.
type ProfileUpdateRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	FlatNo      *string   `json:"flat_no,omitempty"`
	Mobile      *string   `json:"mobile,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Committees  *[]string `json:"committees,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

// ============================================================================
// Registration Types
// ============================================================================

// RegistrationRequest is the public sign-up form body.
type RegistrationRequest struct {
	OwnerName string `json:"owner_name"`
	FlatNo    string `json:"flat_no"`
	Mobile    string `json:"mobile,omitempty"`
	Email     string `json:"email"`
}

// Permissions granted to an approved resident.
type Permissions struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// Registration is a registration request as served by the API.
type Registration struct {
	ID          string       `json:"id"`
	OwnerName   string       `json:"owner_name"`
	FlatNo      string       `json:"flat_no"`
	Mobile      string       `json:"mobile,omitempty"`
	Email       string       `json:"email"`
	Status      string       `json:"status"`
	Permissions *Permissions `json:"permissions,omitempty"`
	ReviewedBy  string       `json:"reviewed_by,omitempty"`
	ReviewDate  *time.Time   `json:"review_date,omitempty"`
	RequestDate time.Time    `json:"request_date"`
}

// ============================================================================
// Admin Types
// ============================================================================

// ApproveResidentRequest for POST /v1/admin/approve-resident.
type ApproveResidentRequest struct {
	RequestID string `json:"request_id"`

	// Permissions defaults to read-only when omitted.
	Permissions *Permissions `json:"permissions,omitempty"`
}

// ApproveResidentResponse hands the temporary password to the approving
// admin, who passes it to the resident out-of-band.
type ApproveResidentResponse struct {
	Success      bool   `json:"success"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	FlatNo       string `json:"flat_no"`
	TempPassword string `json:"temp_password"`
}

// ResetPasswordRequest for POST /v1/admin/reset-password. One of UserID or
// Email names the target; UserID takes precedence.
type ResetPasswordRequest struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ResetPasswordResponse carries the fresh temporary password.
type ResetPasswordResponse struct {
	Success     bool   `json:"success"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// ============================================================================
// Project Types
// ============================================================================

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Committee   string    `json:"committee"`
	Status      string    `json:"status"`
	Timeline    string    `json:"timeline,omitempty"`
	Budget      string    `json:"budget,omitempty"`
	Progress    int       `json:"progress"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Committee   string `json:"committee"`
	Status      string `json:"status,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Status      *string `json:"status,omitempty"`
	Timeline    *string `json:"timeline,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProjectUpdateNote struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	UpdateText string    `json:"update_text"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type AddProjectUpdateRequest struct {
	UpdateText string `json:"update_text"`
}

// ============================================================================
// Expense Types
// ============================================================================

type Expense struct {
	ID                     string    `json:"id"`
	ProjectID              string    `json:"project_id"`
	Description            string    `json:"description"`
	Amount                 float64   `json:"amount"`
	Vendor                 string    `json:"vendor,omitempty"`
	Date                   string    `json:"date,omitempty"`
	CommitteeApproved      bool      `json:"committee_approved"`
	GeneralMeetingApproved bool      `json:"general_meeting_approved"`
	ApprovedBy             string    `json:"approved_by,omitempty"`
	CreatedBy              string    `json:"created_by"`
	CreatedAt              time.Time `json:"created_at"`
}

type AddExpenseRequest struct {
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Vendor      string  `json:"vendor,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// ApproveExpenseRequest grants one approval kind: "committee" or
// "general_meeting".
type ApproveExpenseRequest struct {
	Kind string `json:"kind"`
}

// ============================================================================
// Notice, Message, Committee, Document, Audit Types
// ============================================================================

type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Category  string    `json:"category"`
	Date      string    `json:"date,omitempty"`
	FileURL   string    `json:"file_url,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
	IsAuto    bool      `json:"is_auto"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateNoticeRequest struct {
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostMessageRequest struct {
	Message string `json:"message"`
}

type CommitteeMember struct {
	ID         string    `json:"id"`
	Committee  string    `json:"committee"`
	Slot       string    `json:"slot"`
	MemberName string    `json:"member_name"`
	ProfileID  string    `json:"profile_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UpsertCommitteeMemberRequest struct {
	Committee  string `json:"committee"`
	Slot       string `json:"slot"`
	MemberName string `json:"member_name"`
	ProfileID  string `json:"profile_id,omitempty"`
}

type CommitteeBoard struct {
	Convenor        string    `json:"convenor"`
	CommitteeMember string    `json:"committee_member"`
	Residents       [3]string `json:"residents"`
}

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type,omitempty"`
	Description string    `json:"description,omitempty"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuditEntry struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id,omitempty"`
	UserEmail    string         `json:"user_email"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
