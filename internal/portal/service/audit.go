package service

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
)

// AuditService exposes the audit trail to admins. Read-only; entries are
// written by the recorder, never through here.
type AuditService struct {
	Store store.Store
}

func (s *AuditService) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Store.AuditLog().ListAuditEntries(ctx, f)
}
