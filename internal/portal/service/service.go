// Package service holds the portal's business logic: authentication,
// registration approval, projects and expenses, notices, and the privileged
// admin operations. Handlers stay thin; everything that matters lives here.
package service

import (
	"context"
	"errors"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/httpx"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not_found")
)

// actorCtx stamps the principal onto a context that has no authenticated
// request behind it, so the audit trail still names who acted. Login is the
// main case: the user is only known after the credentials check.
func actorCtx(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, httpx.CtxKeyUserID, userID)
	return context.WithValue(ctx, httpx.CtxKeyEmail, email)
}

// callerProfile loads the authenticated caller's profile row. The row, not
// the token claims, is what privileged checks trust.
func callerProfile(ctx context.Context, st store.Store) (domain.Profile, error) {
	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		return domain.Profile{}, ErrForbidden
	}
	p, err := st.Profiles().GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrForbidden
		}
		return domain.Profile{}, err
	}
	return p, nil
}

// canEditCommittee reports whether the profile may manage the given
// committee: admins always, committee members only for codes listed on
// their profile.
func canEditCommittee(p domain.Profile, committee string) bool {
	if p.Role == domain.RoleAdmin {
		return true
	}
	if p.Role != domain.RoleCommittee {
		return false
	}
	for _, c := range p.Committees {
		if c == committee {
			return true
		}
	}
	return false
}
