package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// ExportFormats lists the formats StreamProjects accepts
var ExportFormats = map[string]bool{
	"ndjson": true,
	"json":   true,
	"csv":    true,
}

// csvHeader is the column order of CSV exports; it follows the table layout
var csvHeader = []string{
	"id", "title", "category", "description",
	"website_url",
	"campaign_goal", "strategy_overview", "platforms_used", "campaign_link",
	"design_type", "client_name", "project_outcome",
	"video_purpose", "client_organization", "video_link", "key_results",
	"technologies", "results_achieved", "image_url", "github_url", "completion_date", "created_at",
}

// exportService is the concrete implementation of ExportService
type exportService struct {
	repo repository.ProjectRepository
	log  zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repo repository.ProjectRepository, log zerolog.Logger) *exportService {
	return &exportService{
		repo: repo,
		log:  log.With().Str("service", "export").Logger(),
	}
}

// StreamProjects streams projects in the specified format.
// An empty category exports the whole catalog.
func (s *exportService) StreamProjects(ctx context.Context, w http.ResponseWriter, format, category string) error {
	s.log.Info().Str("format", format).Str("category", category).Msg("Starting projects export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w, category)
	case "json":
		return s.streamJSON(ctx, w, category)
	case "csv":
		return s.streamCSV(ctx, w, category)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter, category string) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=projects.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repo.StreamAll(ctx, category, func(project *models.Project) error {
		data, err := json.Marshal(project)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Projects export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter, category string) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=projects.json")

	w.Write([]byte("["))
	first := true

	err := s.repo.StreamAll(ctx, category, func(project *models.Project) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(project)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter, category string) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=projects.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(csvHeader)

	return s.repo.StreamAll(ctx, category, func(project *models.Project) error {
		f := models.FlattenDetails(project.Details)
		return writer.Write([]string{
			strconv.FormatInt(project.ID, 10),
			project.Title,
			string(project.Category),
			project.Description,
			deref(f.WebsiteURL),
			deref(f.CampaignGoal),
			deref(f.StrategyOverview),
			strings.Join(f.PlatformsUsed, ";"),
			deref(f.CampaignLink),
			deref(f.DesignType),
			deref(f.ClientName),
			deref(f.ProjectOutcome),
			deref(f.VideoPurpose),
			deref(f.ClientOrganization),
			deref(f.VideoLink),
			deref(f.KeyResults),
			strings.Join(project.Technologies, ";"),
			deref(project.ResultsAchieved),
			project.ImageURL,
			deref(project.GithubURL),
			project.CompletionDate.UTC().Format(time.RFC3339),
			project.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
