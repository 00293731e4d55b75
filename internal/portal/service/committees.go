package service

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

// CommitteeService manages the published committee rosters. Seats are upserts
// keyed by (committee, slot); replacing a convenor is just writing the seat
// again.
type CommitteeService struct {
	Store store.Store
}

func (s *CommitteeService) UpsertSeat(ctx context.Context, m domain.CommitteeMember) error {
	if !domain.ValidCommittee(m.Committee) {
		return ErrInvalidCommittee
	}
	if !domain.ValidSlot(m.Slot) {
		return ErrInvalidCommittee
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return err
	}
	if !canEditCommittee(caller, m.Committee) {
		return ErrForbidden
	}

	m.ID = idx.New().String()
	return s.Store.CommitteeMembers().UpsertCommitteeMember(ctx, m)
}

func (s *CommitteeService) List(ctx context.Context, committee string) ([]domain.CommitteeMember, error) {
	return s.Store.CommitteeMembers().ListCommitteeMembers(ctx, committee)
}

// Board assembles the display view for one committee from its seat rows.
func (s *CommitteeService) Board(ctx context.Context, committee string) (domain.CommitteeBoard, error) {
	if !domain.ValidCommittee(committee) {
		return domain.CommitteeBoard{}, ErrInvalidCommittee
	}

	members, err := s.Store.CommitteeMembers().ListCommitteeMembers(ctx, committee)
	if err != nil {
		return domain.CommitteeBoard{}, err
	}

	var board domain.CommitteeBoard
	for _, m := range members {
		switch m.Slot {
		case domain.SlotConvenor:
			board.Convenor = m.MemberName
		case domain.SlotCommitteeMember:
			board.CommitteeMember = m.MemberName
		case domain.SlotResident1:
			board.Residents[0] = m.MemberName
		case domain.SlotResident2:
			board.Residents[1] = m.MemberName
		case domain.SlotResident3:
			board.Residents[2] = m.MemberName
		}
	}
	return board, nil
}
