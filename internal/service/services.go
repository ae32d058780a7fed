package service

import (
	"context"
	"net/http"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// CatalogService defines the interface for project catalog operations
type CatalogService interface {
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListProjectsByCategory(ctx context.Context, category string) ([]*models.Project, error)
	CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error)
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// ExportService defines the interface for catalog export
type ExportService interface {
	StreamProjects(ctx context.Context, w http.ResponseWriter, format, category string) error
}

// Services holds all service interfaces
type Services struct {
	Catalog CatalogService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Catalog: newCatalogService(repos.Project, log),
		Export:  newExportService(repos.Project, log),
	}
}
