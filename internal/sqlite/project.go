package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/arlett/prodboard/internal/domain/project"
)

// ProjectRepository implements project.Repository and the sync store
// over SQLite.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, types, designers, editors, notification_status, state,
	work_period_start, work_period_end, reference_date, notes, unit_name,
	size_spec, color_draft_date, file_path, last_updated_at`

// ListActive returns projects whose state is neither completed nor
// closed, newest first.
func (r *ProjectRepository) ListActive(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE state NOT IN (?, ?)
		ORDER BY last_updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, project.StateCompleted, project.StateClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListAll returns every project regardless of lifecycle state, newest
// first.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY last_updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	proj, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, project.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// SetState updates a project's lifecycle state.
func (r *ProjectRepository) SetState(ctx context.Context, id string, state project.LifecycleState) error {
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("failed to set project state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return project.ErrNotFound
	}
	return nil
}

// UpsertAll writes a sync batch in one transaction: either every
// record commits or none do. Idempotent by id, last write wins.
func (r *ProjectRepository) UpsertAll(ctx context.Context, projects []project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (
			id, name, types, designers, editors, notification_status, state,
			work_period_start, work_period_end, reference_date, notes, unit_name,
			size_spec, color_draft_date, file_path, last_updated_at, synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			types = excluded.types,
			designers = excluded.designers,
			editors = excluded.editors,
			notification_status = excluded.notification_status,
			state = excluded.state,
			work_period_start = excluded.work_period_start,
			work_period_end = excluded.work_period_end,
			reference_date = excluded.reference_date,
			notes = excluded.notes,
			unit_name = excluded.unit_name,
			size_spec = excluded.size_spec,
			color_draft_date = excluded.color_draft_date,
			file_path = excluded.file_path,
			last_updated_at = excluded.last_updated_at,
			synced_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		state := p.State
		if state == "" {
			state = project.StateInProgress
		}
		var periodStart, periodEnd string
		if p.WorkPeriod != nil {
			periodStart = p.WorkPeriod.Start
			periodEnd = p.WorkPeriod.End
		}

		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			marshalList(p.Types),
			marshalList(p.Designers),
			marshalList(p.Editors),
			p.NotificationStatus,
			state,
			periodStart,
			periodEnd,
			p.ReferenceDate,
			p.Notes,
			p.UnitName,
			p.SizeSpec,
			p.ColorDraftDate,
			p.FilePath,
			p.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert project %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert batch: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		p                          project.Project
		types, designers, editors  string
		periodStart, periodEnd     string
		lastUpdated                sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&types,
		&designers,
		&editors,
		&p.NotificationStatus,
		&p.State,
		&periodStart,
		&periodEnd,
		&p.ReferenceDate,
		&p.Notes,
		&p.UnitName,
		&p.SizeSpec,
		&p.ColorDraftDate,
		&p.FilePath,
		&lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	p.Types = unmarshalList(types)
	p.Designers = unmarshalList(designers)
	p.Editors = unmarshalList(editors)
	if periodStart != "" || periodEnd != "" {
		p.WorkPeriod = &project.DateRange{Start: periodStart, End: periodEnd}
	}
	if lastUpdated.Valid {
		p.LastUpdatedAt = lastUpdated.Time
	}
	return &p, nil
}

func scanProjects(rows *sql.Rows) ([]project.Project, error) {
	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func marshalList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func unmarshalList(raw string) []string {
	var values []string
	_ = json.Unmarshal([]byte(raw), &values)
	if values == nil {
		values = []string{}
	}
	return values
}
