package domain

import "time"

// Project statuses as shown on the projects board.
const (
	ProjectStatusPlanned   = "Planned"
	ProjectStatusOngoing   = "Ongoing"
	ProjectStatusCompleted = "Completed"
	ProjectStatusOnHold    = "On Hold"
)

// Project is a committee-owned work item (repairs, amenities, events).
type Project struct {
	ID          string
	Name        string
	Committee   string // committee code (A..G)
	Status      string
	Timeline    string // free text, e.g. "Q3 2026" or "TBD"
	Budget      string // free text; formal accounting happens in expenses
	Progress    int    // 0..100
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectPatch names the mutable fields of a project. Nil means unchanged.
type ProjectPatch struct {
	Name        *string
	Status      *string
	Timeline    *string
	Budget      *string
	Progress    *int
	Description *string
}

// ProjectUpdate is a progress note on a project.
type ProjectUpdate struct {
	ID         string
	ProjectID  string
	UpdateText string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}
