package mocks

import (
	"context"
	"net/http"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/service"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	ListFunc           func(ctx context.Context) ([]*models.Project, error)
	ListByCategoryFunc func(ctx context.Context, category string) ([]*models.Project, error)
	CreateFunc         func(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error)
	Counts             map[string]int
	CreatedRequests    []*models.CreateProjectRequest
}

// Verify interface compliance
var _ service.CatalogService = (*MockCatalogService)(nil)

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{
		Counts:          make(map[string]int),
		CreatedRequests: make([]*models.CreateProjectRequest, 0),
	}
}

func (m *MockCatalogService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Project{}, nil
}

func (m *MockCatalogService) ListProjectsByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category)
	}
	return []*models.Project{}, nil
}

func (m *MockCatalogService) CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	m.CreatedRequests = append(m.CreatedRequests, req)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Project{ID: int64(len(m.CreatedRequests)), Title: req.Title}, nil
}

func (m *MockCatalogService) Count(ctx context.Context) (int, error) {
	total := 0
	for _, n := range m.Counts {
		total += n
	}
	return total, nil
}

func (m *MockCatalogService) CountByCategory(ctx context.Context) (map[string]int, error) {
	return m.Counts, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format, category string) error
	Calls      []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) StreamProjects(ctx context.Context, w http.ResponseWriter, format, category string) error {
	m.Calls = append(m.Calls, format)
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, format, category)
	}
	return nil
}
