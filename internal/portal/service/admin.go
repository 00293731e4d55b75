package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/cryptox"
	"github.com/suntowerrwa/portal/pkg/idx"
	"github.com/suntowerrwa/portal/pkg/slogx"
)

var (
	ErrAlreadyProcessed = errors.New("request_already_processed")
	ErrEmailTaken       = errors.New("email_already_registered")
)

// AdminService carries the privileged operations: turning approved
// registrations into live accounts and resetting forgotten passwords. Every
// entry point re-reads the caller's profile row and requires the admin role
// there; the admin scopes on the token only get a request as far as the door.
type AdminService struct {
	Store store.Store
	Audit *audit.Recorder
}

// ApprovalResult is handed back to the approving admin, who passes the
// temporary password to the resident out-of-band.
type ApprovalResult struct {
	UserID       string
	Email        string
	Name         string
	FlatNo       string
	TempPassword string
}

// ApproveResident creates a login for a pending registration request.
//
// The account creation is the one step that must succeed; the bookkeeping
// after it (marking the request, the welcome notice) is best effort, because
// a half-approved request with a live account is recoverable while a dead
// account behind an "approved" request is not.
func (s *AdminService) ApproveResident(ctx context.Context, requestID string, perms *domain.Permissions) (*ApprovalResult, error) {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	l := slogx.FromContext(ctx)

	req, err := s.Store.Registrations().GetRegistrationByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != domain.RegistrationPending {
		return nil, ErrAlreadyProcessed
	}

	tempPassword, err := cryptox.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := cryptox.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.Audit.Record(ctx, domain.ActionCreateAccount, "user", user.ID,
		map[string]any{"email": req.Email})

	profile := domain.Profile{
		ID:          user.ID,
		Email:       req.Email,
		DisplayName: req.OwnerName,
		FlatNo:      req.FlatNo,
		Mobile:      req.Mobile,
		Role:        domain.RoleResident,
		Status:      domain.ProfileStatusActive,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		l.Warn("approve: profile insert failed, account still live",
			slog.String("user_id", user.ID), slog.Any("error", err))
	}

	if perms == nil {
		p := domain.DefaultPermissions()
		perms = &p
	}
	if err := s.Store.Registrations().UpdateRegistrationStatus(ctx,
		requestID, domain.RegistrationApproved, admin.Email, perms); err != nil {
		l.Warn("approve: request status update failed",
			slog.String("request_id", requestID), slog.Any("error", err))
	}

	notice := domain.Notice{
		ID:        idx.New().String(),
		Title:     "New resident approved",
		Summary:   fmt.Sprintf("%s (Flat %s) has joined the portal.", req.OwnerName, req.FlatNo),
		Category:  "General",
		Date:      time.Now().Format("2006-01-02"),
		IsAuto:    true,
		CreatedBy: admin.ID,
	}
	if err := s.Store.Notices().CreateNotice(ctx, notice); err != nil {
		l.Warn("approve: welcome notice failed", slog.Any("error", err))
	}

	s.Audit.Record(ctx, domain.ActionApproveResident, "registration_request", requestID,
		map[string]any{"email": req.Email, "flat_no": req.FlatNo})

	return &ApprovalResult{
		UserID:       user.ID,
		Email:        req.Email,
		Name:         req.OwnerName,
		FlatNo:       req.FlatNo,
		TempPassword: tempPassword,
	}, nil
}

// RejectResident closes a pending request without creating an account.
func (s *AdminService) RejectResident(ctx context.Context, requestID string) error {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	req, err := s.Store.Registrations().GetRegistrationByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if req.Status != domain.RegistrationPending {
		return ErrAlreadyProcessed
	}

	if err := s.Store.Registrations().UpdateRegistrationStatus(ctx,
		requestID, domain.RegistrationRejected, admin.Email, nil); err != nil {
		return err
	}

	s.Audit.Record(ctx, domain.ActionRejectResident, "registration_request", requestID,
		map[string]any{"email": req.Email})
	return nil
}

// ResetPassword replaces a user's password with a fresh temporary one and
// kills every live session for the account. The target may be named by user
// id or by email; id wins when both are given.
func (s *AdminService) ResetPassword(ctx context.Context, userID, email string) (*ApprovalResult, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	var user domain.User
	var err error
	if userID != "" {
		user, err = s.Store.Users().GetUserByID(ctx, userID)
	} else {
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tempPassword, err := cryptox.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := cryptox.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		return tx.Sessions().RevokeAllUserSessions(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, domain.ActionResetPassword, "user", user.ID,
		map[string]any{"email": user.Email})

	return &ApprovalResult{
		UserID:       user.ID,
		Email:        user.Email,
		TempPassword: tempPassword,
	}, nil
}

// requireAdmin returns the caller's profile iff the profile row says admin.
func (s *AdminService) requireAdmin(ctx context.Context) (domain.Profile, error) {
	p, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Profile{}, err
	}
	if p.Role != domain.RoleAdmin {
		return domain.Profile{}, ErrForbidden
	}
	return p, nil
}
