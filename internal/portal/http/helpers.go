package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/internal/portal/storage"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
	"github.com/suntowerrwa/portal/pkg/slogx"
)

// decodeJSON decodes the request body into v, rejecting unknown fields.
// Returns false after writing the error response when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		portalsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

// writeServiceError maps service-level errors onto the API error taxonomy.
// Anything unmapped is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		portalsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		portalsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrAlreadyProcessed):
		portalsdk.ErrAlreadyProcessed.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		portalsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAccountNotActive):
		portalsdk.ErrAccountNotActive.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefresh):
		portalsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		portalsdk.ErrConflict.WriteError(w)
	case errors.Is(err, service.ErrInvalidCommittee),
		errors.Is(err, service.ErrInvalidApprovalKind),
		errors.Is(err, service.ErrInvalidRegistration),
		errors.Is(err, service.ErrEmptyMessage):
		portalsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, storage.ErrObjectExists):
		portalsdk.ErrConflict.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		portalsdk.ErrServerError.WriteError(w)
	}
}

// ============================================================================
// Domain to wire mapping
// ============================================================================

func toProfile(p domain.Profile) portalsdk.Profile {
	return portalsdk.Profile{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		FlatNo:      p.FlatNo,
		Mobile:      p.Mobile,
		Role:        p.Role,
		Committees:  p.Committees,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProfiles(in []domain.Profile) []portalsdk.Profile {
	out := make([]portalsdk.Profile, len(in))
	for i, p := range in {
		out[i] = toProfile(p)
	}
	return out
}

func toRegistration(r domain.RegistrationRequest) portalsdk.Registration {
	out := portalsdk.Registration{
		ID:          r.ID,
		OwnerName:   r.OwnerName,
		FlatNo:      r.FlatNo,
		Mobile:      r.Mobile,
		Email:       r.Email,
		Status:      r.Status,
		ReviewedBy:  r.ReviewedBy,
		ReviewDate:  r.ReviewDate,
		RequestDate: r.RequestDate,
	}
	if r.Permissions != nil {
		out.Permissions = &portalsdk.Permissions{
			Read:  r.Permissions.Read,
			Write: r.Permissions.Write,
		}
	}
	return out
}

func toRegistrations(in []domain.RegistrationRequest) []portalsdk.Registration {
	out := make([]portalsdk.Registration, len(in))
	for i, r := range in {
		out[i] = toRegistration(r)
	}
	return out
}

func toProject(p domain.Project) portalsdk.Project {
	return portalsdk.Project{
		ID:          p.ID,
		Name:        p.Name,
		Committee:   p.Committee,
		Status:      p.Status,
		Timeline:    p.Timeline,
		Budget:      p.Budget,
		Progress:    p.Progress,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjects(in []domain.Project) []portalsdk.Project {
	out := make([]portalsdk.Project, len(in))
	for i, p := range in {
		out[i] = toProject(p)
	}
	return out
}

func toProjectUpdate(u domain.ProjectUpdate) portalsdk.ProjectUpdateNote {
	return portalsdk.ProjectUpdateNote{
		ID:         u.ID,
		ProjectID:  u.ProjectID,
		UpdateText: u.UpdateText,
		AuthorID:   u.AuthorID,
		AuthorName: u.AuthorName,
		CreatedAt:  u.CreatedAt,
	}
}

func toExpense(e domain.Expense) portalsdk.Expense {
	return portalsdk.Expense{
		ID:                     e.ID,
		ProjectID:              e.ProjectID,
		Description:            e.Description,
		Amount:                 e.Amount,
		Vendor:                 e.Vendor,
		Date:                   e.Date,
		CommitteeApproved:      e.CommitteeApproved,
		GeneralMeetingApproved: e.GeneralMeetingApproved,
		ApprovedBy:             e.ApprovedBy,
		CreatedBy:              e.CreatedBy,
		CreatedAt:              e.CreatedAt,
	}
}

func toNotice(n domain.Notice) portalsdk.Notice {
	return portalsdk.Notice{
		ID:        n.ID,
		Title:     n.Title,
		Summary:   n.Summary,
		Category:  n.Category,
		Date:      n.Date,
		FileURL:   n.FileURL,
		FileType:  n.FileType,
		IsAuto:    n.IsAuto,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
	}
}

func toMessage(m domain.Message) portalsdk.Message {
	return portalsdk.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
	}
}

func toCommitteeMember(m domain.CommitteeMember) portalsdk.CommitteeMember {
	return portalsdk.CommitteeMember{
		ID:         m.ID,
		Committee:  m.Committee,
		Slot:       m.Slot,
		MemberName: m.MemberName,
		ProfileID:  m.ProfileID,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDocument(d domain.Document) portalsdk.Document {
	return portalsdk.Document{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		FileURL:     d.FileURL,
		FileType:    d.FileType,
		Description: d.Description,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func toAuditEntry(e domain.AuditEntry) portalsdk.AuditEntry {
	return portalsdk.AuditEntry{
		ID:           e.ID,
		UserID:       e.UserID,
		UserEmail:    e.UserEmail,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		IPAddress:    e.IPAddress,
		CreatedAt:    e.CreatedAt,
	}
}
