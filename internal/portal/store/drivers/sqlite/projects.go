package sqlite

import (
	"context"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type projectsRepo struct {
	db dbtx
}

const projectColumns = `id, name, committee, status, timeline, budget, progress, description, created_by, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.Committee, &p.Status, &p.Timeline,
		&p.Budget, &p.Progress, &p.Description, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context, committee string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if committee != "" {
		query += ` WHERE committee = ?`
		args = append(args, committee)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, committee, status, timeline, budget, progress, description, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Committee, p.Status, p.Timeline, p.Budget,
		p.Progress, p.Description, p.CreatedBy)
	return mapConflict(err)
}

func (r *projectsRepo) UpdateProject(ctx context.Context, id string, upd domain.ProjectPatch) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Timeline != nil {
		sets = append(sets, "timeline = ?")
		args = append(args, *upd.Timeline)
	}
	if upd.Budget != nil {
		sets = append(sets, "budget = ?")
		args = append(args, *upd.Budget)
	}
	if upd.Progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *upd.Progress)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectsRepo) CreateProjectUpdate(ctx context.Context, u domain.ProjectUpdate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_updates (id, project_id, update_text, author_id, author_name)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.ProjectID, u.UpdateText, u.AuthorID, u.AuthorName)
	return err
}

func (r *projectsRepo) ListProjectUpdates(ctx context.Context, projectID string) ([]domain.ProjectUpdate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, update_text, author_id, author_name, created_at
		 FROM project_updates WHERE project_id = ? ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProjectUpdate
	for rows.Next() {
		var u domain.ProjectUpdate
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.UpdateText, &u.AuthorID,
			&u.AuthorName, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
