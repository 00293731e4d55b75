package service

import (
	"context"
	"errors"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

var ErrInvalidRegistration = errors.New("invalid_registration")

// RegistrationService accepts the public sign-up form and lets admins browse
// the queue. Approval and rejection live on AdminService because they mint
// accounts.
type RegistrationService struct {
	Store store.Store
}

// Submit files a new pending request. This is the one unauthenticated write
// in the portal, so it validates hard and stores nothing but what was asked.
func (s *RegistrationService) Submit(ctx context.Context, r domain.RegistrationRequest) (domain.RegistrationRequest, error) {
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.FlatNo = strings.TrimSpace(r.FlatNo)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Mobile = strings.TrimSpace(r.Mobile)

	if r.OwnerName == "" || r.FlatNo == "" || !strings.Contains(r.Email, "@") {
		return domain.RegistrationRequest{}, ErrInvalidRegistration
	}

	r.ID = idx.New().String()
	r.Status = domain.RegistrationPending
	r.Permissions = nil
	r.ReviewedBy = ""
	r.ReviewDate = nil

	if err := s.Store.Registrations().CreateRegistration(ctx, r); err != nil {
		return domain.RegistrationRequest{}, err
	}
	return s.Store.Registrations().GetRegistrationByID(ctx, r.ID)
}

func (s *RegistrationService) List(ctx context.Context, status string) ([]domain.RegistrationRequest, error) {
	return s.Store.Registrations().ListRegistrations(ctx, status)
}

func (s *RegistrationService) Get(ctx context.Context, id string) (domain.RegistrationRequest, error) {
	r, err := s.Store.Registrations().GetRegistrationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.RegistrationRequest{}, ErrNotFound
	}
	return r, err
}
