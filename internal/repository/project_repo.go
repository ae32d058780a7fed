package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/portfolio-catalog-api/internal/models"
)

// projectRepo is the concrete implementation of ProjectRepository
type projectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *sql.DB) ProjectRepository {
	return &projectRepo{db: db}
}

// Create inserts a new project and returns the stored row,
// including the server-assigned id and created_at
func (r *projectRepo) Create(ctx context.Context, project *models.NewProject) (*models.Project, error) {
	query := `
		INSERT INTO projects (
			title, category, description,
			website_url,
			campaign_goal, strategy_overview, platforms_used, campaign_link,
			design_type, client_name, project_outcome,
			video_purpose, client_organization, video_link, key_results,
			technologies, results_achieved, image_url, github_url, completion_date
		) VALUES (
			$1, $2, $3,
			$4,
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19, $20::timestamptz
		)
		RETURNING ` + projectColumns

	var row projectRow
	if err := r.db.QueryRowContext(ctx, query, insertArgs(project)...).Scan(row.scanTargets()...); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return row.toProject(), nil
}

// List retrieves every project, newest first
func (r *projectRepo) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	return r.query(ctx, query)
}

// ListByCategory retrieves the projects of one category, newest first.
// The category is not checked; an unknown value matches nothing.
func (r *projectRepo) ListByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE category = $1 ORDER BY created_at DESC, id DESC`
	return r.query(ctx, query, category)
}

func (r *projectRepo) query(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	projects := make([]*models.Project, 0)
	err := r.each(ctx, query, args, func(p *models.Project) error {
		projects = append(projects, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// each runs query and hands every row to callback
func (r *projectRepo) each(ctx context.Context, query string, args []any, callback func(*models.Project) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row projectRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return fmt.Errorf("scan project: %w", err)
		}
		if err := callback(row.toProject()); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the total number of projects
func (r *projectRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// CountByCategory returns the number of projects per stored category value
func (r *projectRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM projects GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// StreamAll streams projects for export, newest first.
// An empty category streams every project.
func (r *projectRepo) StreamAll(ctx context.Context, category string, callback func(*models.Project) error) error {
	if category == "" {
		query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
		return r.each(ctx, query, nil, callback)
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE category = $1 ORDER BY created_at DESC, id DESC`
	return r.each(ctx, query, []any{category}, callback)
}
