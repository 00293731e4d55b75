package service

import (
	"context"
	"errors"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/idx"
)

var ErrInvalidCommittee = errors.New("invalid_committee")

// ProjectService manages committee projects and their progress notes.
// Writes are committee-scoped: a committee member may only touch projects of
// committees listed on their own profile, admins may touch any.
type ProjectService struct {
	Store store.Store
	Audit *audit.Recorder
}

func (s *ProjectService) List(ctx context.Context, committee string) ([]domain.Project, error) {
	return s.Store.Projects().ListProjects(ctx, committee)
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	p, err := s.Store.Projects().GetProjectByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Project{}, ErrNotFound
	}
	return p, err
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if !domain.ValidCommittee(p.Committee) {
		return domain.Project{}, ErrInvalidCommittee
	}
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Project{}, err
	}
	if !canEditCommittee(caller, p.Committee) {
		return domain.Project{}, ErrForbidden
	}

	p.ID = idx.New().String()
	p.CreatedBy = caller.ID
	if p.Status == "" {
		p.Status = domain.ProjectStatusPlanned
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}

	s.Audit.Record(ctx, domain.ActionCreateProject, "project", p.ID,
		map[string]any{"name": p.Name, "committee": p.Committee})
	return s.Store.Projects().GetProjectByID(ctx, p.ID)
}

func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Project{}, err
	}
	if !canEditCommittee(caller, existing.Committee) {
		return domain.Project{}, ErrForbidden
	}

	if err := s.Store.Projects().UpdateProject(ctx, id, patch); err != nil {
		return domain.Project{}, err
	}

	s.Audit.Record(ctx, domain.ActionUpdateProject, "project", id, nil)
	return s.Store.Projects().GetProjectByID(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return err
	}
	if !canEditCommittee(caller, existing.Committee) {
		return ErrForbidden
	}

	return s.Store.Projects().DeleteProject(ctx, id)
}

// AddUpdate appends a progress note. Any writer on the project's committee
// may post one; the author's display name is denormalised onto the note so
// the feed renders without profile joins.
func (s *ProjectService) AddUpdate(ctx context.Context, projectID, text string) (domain.ProjectUpdate, error) {
	existing, err := s.Get(ctx, projectID)
	if err != nil {
		return domain.ProjectUpdate{}, err
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.ProjectUpdate{}, err
	}
	if !canEditCommittee(caller, existing.Committee) {
		return domain.ProjectUpdate{}, ErrForbidden
	}

	u := domain.ProjectUpdate{
		ID:         idx.New().String(),
		ProjectID:  projectID,
		UpdateText: text,
		AuthorID:   httpx.UserIDFromCtx(ctx),
		AuthorName: caller.DisplayName,
	}
	if err := s.Store.Projects().CreateProjectUpdate(ctx, u); err != nil {
		return domain.ProjectUpdate{}, err
	}

	s.Audit.Record(ctx, domain.ActionUpdateProject, "project", projectID,
		map[string]any{"note": true})
	return u, nil
}

func (s *ProjectService) ListUpdates(ctx context.Context, projectID string) ([]domain.ProjectUpdate, error) {
	return s.Store.Projects().ListProjectUpdates(ctx, projectID)
}
