package store

import (
	"context"
	"errors"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Users() Users
	Sessions() Sessions
	Profiles() Profiles
	Projects() Projects
	Expenses() Expenses
	Notices() Notices
	CommitteeMembers() CommitteeMembers
	Messages() Messages
	Registrations() Registrations
	Documents() Documents
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., resident
	// approval). The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during the password grant.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to sessions (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by the hash of its refresh token.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// GetSessionByID returns a session by id regardless of revocation state.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RotateSessionToken swaps the token hash and extends expiry (refresh).
	RotateSessionToken(ctx context.Context, sessionID, newHash string, expiresAt time.Time) error

	// RevokeSession flips revoked=1, sets updated_at.
	RevokeSession(ctx context.Context, sessionID string) error

	// RevokeAllUserSessions bulk revocation for a user (password change or reset).
	RevokeAllUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is optional housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}

type Profiles interface {
	// GetProfileByID fetches a profile by its id (same id as the owning user).
	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)

	// GetProfileByEmail fetches a profile by email.
	GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error)

	// ListProfiles returns all profiles ordered by display name.
	ListProfiles(ctx context.Context, role string) ([]domain.Profile, error)

	// CreateProfile inserts a new profile row.
	CreateProfile(ctx context.Context, p domain.Profile) error

	// UpdateProfile applies the non-nil fields of upd and bumps updated_at.
	UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) error
}

type Projects interface {
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns all projects, newest first. committee narrows to a
	// single wing when non-empty.
	ListProjects(ctx context.Context, committee string) ([]domain.Project, error)

	CreateProject(ctx context.Context, p domain.Project) error

	// UpdateProject applies the non-nil fields of upd and bumps updated_at.
	UpdateProject(ctx context.Context, id string, upd domain.ProjectPatch) error

	DeleteProject(ctx context.Context, id string) error

	// CreateProjectUpdate appends a progress note to a project.
	CreateProjectUpdate(ctx context.Context, u domain.ProjectUpdate) error

	// ListProjectUpdates returns the notes for one project, newest first.
	ListProjectUpdates(ctx context.Context, projectID string) ([]domain.ProjectUpdate, error)
}

type Expenses interface {
	GetExpenseByID(ctx context.Context, id string) (domain.Expense, error)

	// ListExpenses returns expenses for a project, newest first. An empty
	// projectID lists every expense.
	ListExpenses(ctx context.Context, projectID string) ([]domain.Expense, error)

	CreateExpense(ctx context.Context, e domain.Expense) error

	// SetApproval flips one of the two approval flags. The flags are
	// independent; setting one never touches the other.
	SetApproval(ctx context.Context, expenseID string, kind domain.ApprovalKind, approvedBy string) error
}

type Notices interface {
	GetNoticeByID(ctx context.Context, id string) (domain.Notice, error)

	// ListNotices returns notices newest first, capped at limit (0 = all).
	ListNotices(ctx context.Context, category string, limit int) ([]domain.Notice, error)

	CreateNotice(ctx context.Context, n domain.Notice) error

	DeleteNotice(ctx context.Context, id string) error
}

type CommitteeMembers interface {
	// UpsertCommitteeMember inserts or replaces the seat keyed by
	// (committee, slot).
	UpsertCommitteeMember(ctx context.Context, m domain.CommitteeMember) error

	// ListCommitteeMembers returns all seats, optionally narrowed to one
	// committee when non-empty.
	ListCommitteeMembers(ctx context.Context, committee string) ([]domain.CommitteeMember, error)

	DeleteCommitteeMember(ctx context.Context, committee, slot string) error
}

type Messages interface {
	CreateMessage(ctx context.Context, m domain.Message) error

	// ListMessages returns messages newest first, capped at limit (0 = all).
	ListMessages(ctx context.Context, limit int) ([]domain.Message, error)
}

type Registrations interface {
	GetRegistrationByID(ctx context.Context, id string) (domain.RegistrationRequest, error)

	// ListRegistrations returns requests newest first. status narrows to one
	// lifecycle state when non-empty.
	ListRegistrations(ctx context.Context, status string) ([]domain.RegistrationRequest, error)

	CreateRegistration(ctx context.Context, r domain.RegistrationRequest) error

	// UpdateRegistrationStatus records the review outcome in one shot.
	UpdateRegistrationStatus(ctx context.Context, id, status, reviewedBy string, perms *domain.Permissions) error
}

type Documents interface {
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// ListDocuments returns document records newest first. category narrows
	// when non-empty.
	ListDocuments(ctx context.Context, category string) ([]domain.Document, error)

	CreateDocument(ctx context.Context, d domain.Document) error

	DeleteDocument(ctx context.Context, id string) error
}

type AuditLog interface {
	// CreateAuditEntry appends one immutable entry. There is no update or
	// delete on this repo.
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditEntries returns entries newest first, narrowed by the filter.
	ListAuditEntries(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error)
}
