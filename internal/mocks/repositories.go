package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/repository"
)

// Verify interface compliance
var _ repository.ProjectRepository = (*MockProjectRepository)(nil)

// MockProjectRepository is an in-memory ProjectRepository.
// It assigns ids and created_at the way the projects table does.
type MockProjectRepository struct {
	mu          sync.Mutex
	Projects    []*models.Project
	NextID      int64
	Now         func() time.Time
	InsertError error
	QueryError  error
	CreateCalls int
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make([]*models.Project, 0),
		NextID:   1,
		Now:      time.Now,
	}
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.NewProject) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	if project.CompletionDate == nil {
		return nil, fmt.Errorf(`insert project: pq: null value in column "completion_date" violates not-null constraint`)
	}
	completion, err := time.Parse(time.RFC3339Nano, *project.CompletionDate)
	if err != nil {
		return nil, fmt.Errorf(`insert project: pq: invalid input syntax for type timestamp with time zone: %q`, *project.CompletionDate)
	}

	technologies := project.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	stored := &models.Project{
		ID:              m.NextID,
		Title:           project.Title,
		Category:        project.Category,
		Description:     project.Description,
		Technologies:    technologies,
		ResultsAchieved: project.ResultsAchieved,
		ImageURL:        project.ImageURL,
		GithubURL:       project.GithubURL,
		CompletionDate:  completion,
		CreatedAt:       m.Now(),
		Details:         project.Details,
	}
	m.NextID++
	m.Projects = append(m.Projects, stored)

	copied := *stored
	return &copied, nil
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	return m.list(func(*models.Project) bool { return true })
}

// ListByCategory matches category exactly, so "" matches nothing
func (m *MockProjectRepository) ListByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	return m.list(func(p *models.Project) bool { return string(p.Category) == category })
}

func (m *MockProjectRepository) list(match func(*models.Project) bool) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}

	out := make([]*models.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		if match(p) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockProjectRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Projects), nil
}

func (m *MockProjectRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	counts := make(map[string]int)
	for _, p := range m.Projects {
		counts[string(p.Category)]++
	}
	return counts, nil
}

func (m *MockProjectRepository) StreamAll(ctx context.Context, category string, callback func(*models.Project) error) error {
	projects, err := m.List(ctx)
	if category != "" {
		projects, err = m.ListByCategory(ctx, category)
	}
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := callback(p); err != nil {
			return err
		}
	}
	return nil
}
