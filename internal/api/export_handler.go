package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/projects/export?format=...&category=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	format := c.Query("format")
	if format == "" {
		format = "ndjson" // Default to NDJSON for streaming
	}
	if !service.ExportFormats[format] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json, csv"})
		return
	}
	category := c.Query("category")

	h.log.Info().
		Str("format", format).
		Str("category", category).
		Msg("Starting streaming export")

	if err := h.services.Export.StreamProjects(c.Request.Context(), c.Writer, format, category); err != nil {
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		// Can't return error JSON after streaming has started
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Disposition")
			c.Writer.Header().Del("Content-Type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export projects", "details": err.Error()})
		}
	}
}
