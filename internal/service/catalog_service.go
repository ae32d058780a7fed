package service

import (
	"context"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/repository"
	"github.com/portfolio-catalog-api/internal/validation"
	"github.com/rs/zerolog"
)

// catalogService is the concrete implementation of CatalogService
type catalogService struct {
	repo repository.ProjectRepository
	log  zerolog.Logger
}

// newCatalogService creates a new CatalogService
func newCatalogService(repo repository.ProjectRepository, log zerolog.Logger) *catalogService {
	return &catalogService{
		repo: repo,
		log:  log.With().Str("service", "catalog").Logger(),
	}
}

// ListProjects returns every project, newest first
func (s *catalogService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.List(ctx)
}

// ListProjectsByCategory returns the projects whose category equals category.
// Unknown categories yield an empty slice rather than an error.
func (s *catalogService) ListProjectsByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	return s.repo.ListByCategory(ctx, category)
}

// CreateProject validates req and stores it.
// Validation happens before the repository is touched.
func (s *catalogService) CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateCreate(req); err != nil {
		return nil, err
	}

	category, err := validation.ValidateCategory(req)
	if err != nil {
		return nil, err
	}

	if missing := validation.MissingDetailFields(req); len(missing) > 0 {
		s.log.Debug().
			Str("category", string(category)).
			Strs("fields", missing).
			Msg("Project created without some category fields")
	}

	project, err := s.repo.Create(ctx, req.ToNewProject(category))
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("project_id", project.ID).
		Str("category", string(project.Category)).
		Msg("Project created")

	return project, nil
}

// Count returns the number of stored projects
func (s *catalogService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// CountByCategory returns the number of stored projects per category
func (s *catalogService) CountByCategory(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByCategory(ctx)
}
