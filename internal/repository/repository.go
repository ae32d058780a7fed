package repository

import (
	"context"

	"github.com/portfolio-catalog-api/internal/database"
	"github.com/portfolio-catalog-api/internal/models"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.NewProject) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Project, error)
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	StreamAll(ctx context.Context, category string, callback func(*models.Project) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Project ProjectRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Project: NewProjectRepo(db.DB),
	}
}
