package domain

import "time"

// Expense approval kinds. The two flags are independent: committee approval
// and general-meeting approval are granted separately and neither is ever
// cleared by granting the other. Full approval means both are set, which is
// the caller's call to make.
type ApprovalKind string

const (
	ApprovalCommittee      ApprovalKind = "committee"
	ApprovalGeneralMeeting ApprovalKind = "general_meeting"
)

// ValidApprovalKind reports whether k names one of the two approval flags.
func ValidApprovalKind(k ApprovalKind) bool {
	return k == ApprovalCommittee || k == ApprovalGeneralMeeting
}

// Expense is an expenditure booked against a project.
type Expense struct {
	ID          string
	ProjectID   string
	Description string
	Amount      float64
	Vendor      string
	Date        string // ISO date (yyyy-mm-dd)

	CommitteeApproved      bool
	GeneralMeetingApproved bool
	ApprovedBy             string // last approver, either kind

	CreatedBy string
	CreatedAt time.Time
}
