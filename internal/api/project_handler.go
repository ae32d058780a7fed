package api

import (
	"errors"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-catalog-api/internal/config"
	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/service"
	"github.com/portfolio-catalog-api/internal/validation"
	"github.com/rs/zerolog"
)

// ProjectHandler handles the catalog endpoints
type ProjectHandler struct {
	services    *service.Services
	log         zerolog.Logger
	exposeStack bool
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		services:    services,
		log:         log.With().Str("handler", "projects").Logger(),
		exposeStack: cfg.IsDevelopment(),
	}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.services.Catalog.ListProjects(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Error fetching projects")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch projects",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// ListProjectsByCategory handles GET /api/projects/category/:category.
// Gin has already percent-decoded the path segment.
func (h *ProjectHandler) ListProjectsByCategory(c *gin.Context) {
	category := c.Param("category")

	projects, err := h.services.Catalog.ListProjectsByCategory(c.Request.Context(), category)
	if err != nil {
		h.log.Error().Err(err).Str("category", category).Msg("Error fetching projects by category")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch projects",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body too large",
				"limit": tooLarge.Limit,
			})
			return
		case errors.Is(err, io.EOF):
			// empty body, let validation report the missing fields
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}
	}

	h.log.Debug().
		Str("title", req.Title).
		Str("category", req.Category).
		Msg("Received project data")

	project, err := h.services.Catalog.CreateProject(c.Request.Context(), &req)
	if err != nil {
		var missing *validation.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Missing required fields",
				"required": validation.RequiredFields,
				"missing":  missing.Missing,
			})
		case errors.Is(err, validation.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid category",
				"allowed": models.Categories,
			})
		default:
			h.log.Error().Err(err).Str("title", req.Title).Msg("Error creating project")
			body := gin.H{
				"error":   "Failed to create project",
				"details": err.Error(),
			}
			// stack is this handler's goroutine at response time, not the
			// site the storage error came from; that is carried by details.
			if h.exposeStack {
				body["stack"] = string(debug.Stack())
			}
			c.JSON(http.StatusInternalServerError, body)
		}
		return
	}

	h.log.Info().Int64("id", project.ID).Msg("Project created successfully")
	c.JSON(http.StatusCreated, project)
}
