package domain

import "time"

// CommitteeCodes are the association's standing committees.
var CommitteeCodes = []string{"A", "B", "C", "D", "E", "F", "G"}

// Committee member slots. Each committee has one convenor, one committee
// member and up to three resident representatives; the (committee, slot)
// pair is unique.
const (
	SlotConvenor        = "convenor"
	SlotCommitteeMember = "committee_member"
	SlotResident1       = "resident_1"
	SlotResident2       = "resident_2"
	SlotResident3       = "resident_3"
)

// CommitteeMember is one filled slot on a committee.
type CommitteeMember struct {
	ID         string
	Committee  string
	Slot       string
	MemberName string
	ProfileID  string // optional link to a portal profile
	UpdatedAt  time.Time
}

// CommitteeBoard is the per-committee view assembled for display.
type CommitteeBoard struct {
	Convenor        string
	CommitteeMember string
	Residents       [3]string
}

// ValidCommittee reports whether code names a standing committee.
func ValidCommittee(code string) bool {
	for _, c := range CommitteeCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ValidSlot reports whether slot is one of the five committee slots.
func ValidSlot(slot string) bool {
	switch slot {
	case SlotConvenor, SlotCommitteeMember, SlotResident1, SlotResident2, SlotResident3:
		return true
	}
	return false
}
