package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-catalog-api/internal/api"
	"github.com/portfolio-catalog-api/internal/config"
	"github.com/portfolio-catalog-api/internal/mocks"
	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/repository"
	"github.com/portfolio-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

const testOrigin = "http://localhost:5173"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "3000"},
		API: config.APIConfig{
			AllowedOrigin: testOrigin,
			MaxBodyBytes:  1024,
		},
		Environment: "development",
	}
}

// setupTestRouter wires the real services to an in-memory repository
func setupTestRouter() (*gin.Engine, *mocks.MockProjectRepository) {
	gin.SetMode(gin.TestMode)

	repo := mocks.NewMockProjectRepository()
	services := service.NewServices(&repository.Repositories{Project: repo}, zerolog.Nop())
	router := api.NewRouter(services, &mocks.MockPinger{}, testConfig(), zerolog.Nop())

	return router, repo
}

// setupMockRouter wires mock services, for failure paths the real services cannot produce
func setupMockRouter(cfg *config.Config) (*gin.Engine, *mocks.MockCatalogService, *mocks.MockExportService) {
	gin.SetMode(gin.TestMode)

	mockCatalog := mocks.NewMockCatalogService()
	mockExport := mocks.NewMockExportService()
	services := &service.Services{
		Catalog: mockCatalog,
		Export:  mockExport,
	}

	router := api.NewRouter(services, &mocks.MockPinger{}, cfg, zerolog.Nop())
	return router, mockCatalog, mockExport
}

func postProject(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const brandIdentity = `{
	"title": "Brand Identity",
	"category": "Graphic Design",
	"description": "Logo and brand book for a coffee roaster",
	"technologies": ["Illustrator", "Figma"],
	"imageUrl": "https://cdn.example.com/brand.png",
	"completionDate": "2024-03-01T00:00:00Z",
	"designType": "Logo",
	"clientName": "Acme Roasters",
	"projectOutcome": "Rebrand shipped"
}`

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/health")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "portfolio-catalog-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	services := service.NewServices(&repository.Repositories{Project: mocks.NewMockProjectRepository()}, zerolog.Nop())
	pinger := &mocks.MockPinger{Err: errors.New("dial tcp: connection refused")}
	router := api.NewRouter(services, pinger, testConfig(), zerolog.Nop())

	w := get(router, "/health")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
	if pinger.Calls != 1 {
		t.Errorf("Expected one ping, got %d", pinger.Calls)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "unhealthy" {
		t.Errorf("Expected status 'unhealthy', got %v", response["status"])
	}
	if response["error"] != "dial tcp: connection refused" {
		t.Errorf("Expected ping error in body, got %v", response["error"])
	}
}

func TestCreateProject_GraphicDesign(t *testing.T) {
	router, repo := setupTestRouter()

	w := postProject(router, brandIdentity)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if response["id"].(float64) != 1 {
		t.Errorf("Expected id 1, got %v", response["id"])
	}
	if response["category"] != "Graphic Design" {
		t.Errorf("Expected Graphic Design, got %v", response["category"])
	}
	if response["designType"] != "Logo" || response["clientName"] != "Acme Roasters" {
		t.Errorf("Design fields not echoed: %v", response)
	}
	if response["createdAt"] == nil || response["createdAt"] == "" {
		t.Error("Expected createdAt to be set")
	}

	// Keys of other categories are present and null
	for _, key := range []string{"websiteUrl", "campaignGoal", "platformsUsed", "videoLink"} {
		value, ok := response[key]
		if !ok {
			t.Errorf("Expected key %s in response", key)
		}
		if value != nil {
			t.Errorf("Expected %s to be null, got %v", key, value)
		}
	}

	if len(repo.Projects) != 1 {
		t.Errorf("Expected 1 stored project, got %d", len(repo.Projects))
	}
}

func TestCreateProject_MissingTitle(t *testing.T) {
	router, repo := setupTestRouter()

	body := strings.Replace(brandIdentity, `"title": "Brand Identity",`, "", 1)
	w := postProject(router, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	expected := `{"error":"Missing required fields","missing":["title"],"required":["title","category","description","imageUrl"]}`
	if w.Body.String() != expected {
		t.Errorf("Unexpected body:\n got: %s\nwant: %s", w.Body.String(), expected)
	}
	if repo.CreateCalls != 0 {
		t.Errorf("Nothing should be inserted, got %d calls", repo.CreateCalls)
	}
}

func TestCreateProject_BadRequests(t *testing.T) {
	router, repo := setupTestRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:           "whitespace title",
			body:           strings.Replace(brandIdentity, `"Brand Identity"`, `"   "`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:           "malformed json",
			body:           `{"title": "Broken"`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "unknown category",
			body:           strings.Replace(brandIdentity, `"Graphic Design"`, `"Podcasts"`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid category",
		},
		{
			name:           "body over limit",
			body:           `{"title":"` + strings.Repeat("a", 4096) + `"}`,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedError:  "Request body too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postProject(router, tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedError)) {
				t.Errorf("Expected error '%s' in response, got: %s", tt.expectedError, w.Body.String())
			}
		})
	}

	if repo.CreateCalls != 0 {
		t.Errorf("Nothing should be inserted, got %d calls", repo.CreateCalls)
	}
}

func TestCreateProject_StorageError(t *testing.T) {
	router, _ := setupTestRouter()

	body := strings.Replace(brandIdentity, `"completionDate": "2024-03-01T00:00:00Z",`, "", 1)
	w := postProject(router, body)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["error"] != "Failed to create project" {
		t.Errorf("Unexpected error %v", response["error"])
	}
	if !strings.Contains(response["details"].(string), "completion_date") {
		t.Errorf("Expected details to name the column, got %v", response["details"])
	}
	stack, _ := response["stack"].(string)
	if !strings.Contains(stack, "(*ProjectHandler).CreateProject") {
		t.Errorf("Expected the responding handler's stack in development mode, got %q", stack)
	}
}

func TestCreateProject_RoundTrip(t *testing.T) {
	router, _ := setupTestRouter()

	body := `{
		"title": "E-commerce Platform",
		"category": "Website Projects",
		"description": "Storefront",
		"technologies": ["React", "Node.js", "PostgreSQL"],
		"imageUrl": "https://cdn.example.com/shop.png",
		"githubUrl": "https://github.com/example/shop",
		"completionDate": "2024-01-20T00:00:00.000Z",
		"websiteUrl": "https://shop.example.com"
	}`
	if w := postProject(router, body); w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	w := get(router, "/api/projects")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var projects []models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &projects); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(projects))
	}

	p := projects[0]
	if strings.Join(p.Technologies, ",") != "React,Node.js,PostgreSQL" {
		t.Errorf("Technologies not preserved in order: %v", p.Technologies)
	}
	website, ok := p.Details.(models.WebsiteDetails)
	if !ok || website.WebsiteURL == nil || *website.WebsiteURL != "https://shop.example.com" {
		t.Errorf("websiteUrl not preserved: %#v", p.Details)
	}
	if p.GithubURL == nil || *p.GithubURL != "https://github.com/example/shop" {
		t.Errorf("githubUrl not preserved: %v", p.GithubURL)
	}
	if p.CompletionDate.Year() != 2024 || p.CompletionDate.Month() != 1 || p.CompletionDate.Day() != 20 {
		t.Errorf("Unexpected completion date %v", p.CompletionDate)
	}
}

func TestListProjects_NewestFirst(t *testing.T) {
	router, _ := setupTestRouter()

	for _, title := range []string{"First", "Second", "Third"} {
		body := strings.Replace(brandIdentity, "Brand Identity", title, 1)
		if w := postProject(router, body); w.Code != http.StatusCreated {
			t.Fatalf("Create %s failed: %d", title, w.Code)
		}
	}

	w := get(router, "/api/projects")

	var projects []models.Project
	json.Unmarshal(w.Body.Bytes(), &projects)

	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
	if projects[0].Title != "Third" || projects[2].Title != "First" {
		t.Errorf("Expected newest first, got %s, %s, %s", projects[0].Title, projects[1].Title, projects[2].Title)
	}
}

func TestListProjects_Empty(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/api/projects")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected [], got %s", w.Body.String())
	}
}

func TestListProjectsByCategory(t *testing.T) {
	router, _ := setupTestRouter()

	video := strings.NewReplacer(
		`"Graphic Design"`, `"Video Editing"`,
		`"designType": "Logo",`, `"videoLink": "https://video.example.com/reel",`,
	)
	postProject(router, video.Replace(brandIdentity))
	postProject(router, brandIdentity)
	postProject(router, video.Replace(brandIdentity))

	w := get(router, "/api/projects/category/Video%20Editing")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var projects []models.Project
	json.Unmarshal(w.Body.Bytes(), &projects)

	if len(projects) != 2 {
		t.Fatalf("Expected 2 video projects, got %d", len(projects))
	}
	for _, p := range projects {
		if p.Category != models.CategoryVideo {
			t.Errorf("Expected Video Editing, got %s", p.Category)
		}
	}
	if projects[0].ID != 3 || projects[1].ID != 1 {
		t.Errorf("Expected ids [3 1], got [%d %d]", projects[0].ID, projects[1].ID)
	}

	unknown := get(router, "/api/projects/category/Podcasts")
	if unknown.Code != http.StatusOK || unknown.Body.String() != "[]" {
		t.Errorf("Expected 200 [], got %d %s", unknown.Code, unknown.Body.String())
	}
}

func TestListProjects_QueryError(t *testing.T) {
	router, repo := setupTestRouter()
	repo.QueryError = errors.New("connection refused")

	for _, url := range []string{"/api/projects", "/api/projects/category/Graphic%20Design"} {
		w := get(router, url)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected status 500, got %d", url, w.Code)
		}
		expected := `{"details":"connection refused","error":"Failed to fetch projects"}`
		if w.Body.String() != expected {
			t.Errorf("%s: unexpected body %s", url, w.Body.String())
		}
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expectStack bool
	}{
		{"development exposes stack", "development", true},
		{"production hides stack", "production", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Environment = tt.environment
			router, mockCatalog, _ := setupMockRouter(cfg)
			mockCatalog.ListFunc = func(ctx context.Context) ([]*models.Project, error) {
				panic("boom")
			}

			w := get(router, "/api/projects")

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("Expected status 500, got %d", w.Code)
			}

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if response["error"] != "Internal Server Error" || response["message"] != "boom" {
				t.Errorf("Unexpected body %v", response)
			}
			if _, ok := response["stack"]; ok != tt.expectStack {
				t.Errorf("Expected stack present=%v, got %v", tt.expectStack, ok)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	router, _ := setupTestRouter()

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/projects", nil)
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204 for OPTIONS, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
			t.Errorf("Expected Access-Control-Allow-Origin '%s', got '%s'", testOrigin, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Expected credentials allowed, got '%s'", got)
		}
		if w.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Error("Expected Access-Control-Allow-Methods header")
		}
	})

	t.Run("simple request from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/projects", nil)
		req.Header.Set("Origin", testOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
			t.Errorf("Expected Access-Control-Allow-Origin '%s', got '%s'", testOrigin, got)
		}
	})

	t.Run("other origin is refused", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/projects", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no Access-Control-Allow-Origin, got '%s'", got)
		}
	})
}

func TestRequestID(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/health")
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("Expected a generated X-Request-Id")
	}

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "req-123" {
		t.Errorf("Expected propagated request id, got '%s'", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	postProject(router, brandIdentity)
	postProject(router, brandIdentity)

	w := get(router, "/metrics")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["total"].(float64) != 2 {
		t.Errorf("Expected 2 projects, got %v", db["total"])
	}
	byCategory := db["by_category"].(map[string]interface{})
	if byCategory["Graphic Design"].(float64) != 2 {
		t.Errorf("Expected 2 design projects, got %v", byCategory["Graphic Design"])
	}
	if byCategory["Video Editing"].(float64) != 0 {
		t.Errorf("Expected empty categories reported as 0, got %v", byCategory["Video Editing"])
	}
}

func TestExportStream(t *testing.T) {
	router, _ := setupTestRouter()
	postProject(router, brandIdentity)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedType   string
		expectedBody   string
	}{
		{
			name:           "default ndjson",
			url:            "/api/projects/export",
			expectedStatus: http.StatusOK,
			expectedType:   "application/x-ndjson",
			expectedBody:   `"title":"Brand Identity"`,
		},
		{
			name:           "csv",
			url:            "/api/projects/export?format=csv",
			expectedStatus: http.StatusOK,
			expectedType:   "text/csv",
			expectedBody:   "id,title,category",
		},
		{
			name:           "invalid format",
			url:            "/api/projects/export?format=xml",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, tt.url)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedType != "" && w.Header().Get("Content-Type") != tt.expectedType {
				t.Errorf("Expected %s, got %s", tt.expectedType, w.Header().Get("Content-Type"))
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedBody)) {
				t.Errorf("Expected '%s' in response, got: %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestExportStream_Error(t *testing.T) {
	router, _, mockExport := setupMockRouter(testConfig())
	mockExport.StreamFunc = func(ctx context.Context, w http.ResponseWriter, format, category string) error {
		return errors.New("query projects: connection refused")
	}

	w := get(router, "/api/projects/export?format=json&category=Video%20Editing")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if len(mockExport.Calls) != 1 || mockExport.Calls[0] != "json" {
		t.Errorf("Expected one json export, got %v", mockExport.Calls)
	}
}

func TestNotFound(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/api/unknown")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
