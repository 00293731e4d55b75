// Package audit writes the append-only trail of security-relevant actions.
// Recording is best effort: a failed insert is logged and swallowed so the
// action that triggered it still succeeds.
package audit

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/idx"
	"github.com/suntowerrwa/portal/pkg/slogx"
)

type Recorder struct {
	Store store.Store
}

func NewRecorder(st store.Store) *Recorder {
	return &Recorder{Store: st}
}

// Record appends one entry. The actor is taken from the request context when
// present; an unauthenticated caller is recorded as "anonymous". Errors never
// propagate to the caller.
func (r *Recorder) Record(ctx context.Context, action, resourceType, resourceID string, details map[string]any) {
	entry := domain.AuditEntry{
		ID:           idx.New().String(),
		UserID:       httpx.UserIDFromCtx(ctx),
		UserEmail:    httpx.EmailFromCtx(ctx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    httpx.RemoteIPFromCtx(ctx),
	}
	if entry.UserEmail == "" {
		entry.UserEmail = domain.AnonymousActor
	}

	if err := r.Store.AuditLog().CreateAuditEntry(ctx, entry); err != nil {
		slogx.FromContext(ctx).Warn("audit write failed",
			"action", action,
			"resource_type", resourceType,
			"error", err)
	}
}
