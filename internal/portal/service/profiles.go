package service

import (
	"context"
	"errors"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
)

// ProfileService reads and edits member profiles. Self-service edits cover
// display data only; role, committees and status are admin-only fields and
// get silently dropped for everyone else.
type ProfileService struct {
	Store store.Store
	Audit *audit.Recorder
}

func (s *ProfileService) Get(ctx context.Context, id string) (domain.Profile, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrNotFound
	}
	return p, err
}

func (s *ProfileService) List(ctx context.Context, role string) ([]domain.Profile, error) {
	return s.Store.Profiles().ListProfiles(ctx, role)
}

// Me returns the caller's own profile.
func (s *ProfileService) Me(ctx context.Context) (domain.Profile, error) {
	return callerProfile(ctx, s.Store)
}

func (s *ProfileService) Update(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.Profile, error) {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Profile{}, err
	}

	if caller.Role != domain.RoleAdmin {
		if caller.ID != id {
			return domain.Profile{}, ErrForbidden
		}
		// Strip the admin-only fields rather than rejecting, so a client
		// that round-trips the whole profile still works.
		upd.Role = nil
		upd.Committees = nil
		upd.Status = nil
	}
	if upd.Role != nil && !domain.ValidRole(*upd.Role) {
		return domain.Profile{}, ErrForbidden
	}

	if err := s.Store.Profiles().UpdateProfile(ctx, id, upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, err
	}

	s.Audit.Record(ctx, domain.ActionUpdateProfile, "profile", id, nil)
	return s.Get(ctx, id)
}
