package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/cryptox"
	"github.com/suntowerrwa/portal/pkg/idx"
	"github.com/suntowerrwa/portal/pkg/jwtx"
	"github.com/suntowerrwa/portal/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrAccountNotActive   = errors.New("account_not_active")
)

// AuthService issues and retires sessions. The access token caches the
// profile's role and derived scopes at issue time; anything privileged goes
// back to the profile row.
type AuthService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Audit      *audit.Recorder
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login verifies the credentials and mints a fresh session. Disabled and
// still-pending accounts fail even with the right password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn time so missing accounts are not distinguishable by latency.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	profile, err := s.Store.Profiles().GetProfileByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile.Status != domain.ProfileStatusActive {
		l.Info("login rejected for inactive account",
			slog.String("email", email), slog.String("status", profile.Status))
		return nil, ErrAccountNotActive
	}

	pair, err := s.issueSession(ctx, user, profile, now)
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actorCtx(ctx, user.ID, user.Email), domain.ActionLogin, "session", pair.SessionID, nil)
	return pair, nil
}

// Refresh rotates the opaque refresh token and mints a new access token.
// The old refresh token is dead after this call whether or not the caller
// saw the response.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	now := time.Now()

	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if sess.Revoked || now.After(sess.ExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.Store.Profiles().GetProfileByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile.Status != domain.ProfileStatusActive {
		return nil, ErrAccountNotActive
	}

	newOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Sessions().RotateSessionToken(ctx, sess.ID,
		cryptox.FingerprintToken(newOpaque), now.Add(s.RefreshTTL)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	access, err := s.signAccess(user, profile, sess.ID, now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: newOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		SessionID:    sess.ID,
	}, nil
}

// ValidateSession reports whether the session behind an access token is
// still alive. This is the liveness probe clients poll; it catches
// revocations before the access token expires on its own.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (bool, error) {
	sess, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !sess.Revoked && time.Now().Before(sess.ExpiresAt), nil
}

// Logout revokes one session. Revoking an already-revoked session is fine.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.Store.Sessions().RevokeSession(ctx, sessionID); err != nil {
		return err
	}
	s.Audit.Record(ctx, domain.ActionLogout, "session", sessionID, nil)
	return nil
}

// ChangePassword verifies the current password, swaps the hash, and revokes
// every session for the user. The caller has to log in again.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.Sessions().RevokeAllUserSessions(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.Audit.Record(ctx, domain.ActionPasswordChange, "user", userID, nil)
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user domain.User, profile domain.Profile, now time.Time) (*domain.TokenPair, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	access, err := s.signAccess(user, profile, sess.ID, now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: opaque,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		SessionID:    sess.ID,
	}, nil
}

func (s *AuthService) signAccess(user domain.User, profile domain.Profile, sessionID string, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(
		user.ID, sessionID, user.Email, profile.Role,
		domain.ScopesForRole(profile.Role),
		s.AccessTTL, s.Issuer, now,
	)
	return s.Signer.Sign(claims)
}
