package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/portfolio-catalog-api/internal/models"
)

// projectColumns is the column list every read query selects, in scan order
const projectColumns = `id, title, category, description,
	website_url,
	campaign_goal, strategy_overview, platforms_used, campaign_link,
	design_type, client_name, project_outcome,
	video_purpose, client_organization, video_link, key_results,
	technologies, results_achieved, image_url, github_url, completion_date, created_at`

// projectRow is one row of the projects table
type projectRow struct {
	ID          int64
	Title       string
	Category    string
	Description string

	WebsiteURL sql.NullString

	CampaignGoal     sql.NullString
	StrategyOverview sql.NullString
	PlatformsUsed    pq.StringArray
	CampaignLink     sql.NullString

	DesignType     sql.NullString
	ClientName     sql.NullString
	ProjectOutcome sql.NullString

	VideoPurpose       sql.NullString
	ClientOrganization sql.NullString
	VideoLink          sql.NullString
	KeyResults         sql.NullString

	Technologies    pq.StringArray
	ResultsAchieved sql.NullString
	ImageURL        string
	GithubURL       sql.NullString
	CompletionDate  time.Time
	CreatedAt       time.Time
}

// scanTargets returns pointers in projectColumns order
func (r *projectRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Title, &r.Category, &r.Description,
		&r.WebsiteURL,
		&r.CampaignGoal, &r.StrategyOverview, &r.PlatformsUsed, &r.CampaignLink,
		&r.DesignType, &r.ClientName, &r.ProjectOutcome,
		&r.VideoPurpose, &r.ClientOrganization, &r.VideoLink, &r.KeyResults,
		&r.Technologies, &r.ResultsAchieved, &r.ImageURL, &r.GithubURL, &r.CompletionDate, &r.CreatedAt,
	}
}

// toProject maps the flat row onto the category-tagged model
func (r *projectRow) toProject() *models.Project {
	technologies := []string(r.Technologies)
	if technologies == nil {
		technologies = []string{}
	}

	category := models.Category(r.Category)
	fields := models.DetailFields{
		WebsiteURL:         fromNull(r.WebsiteURL),
		CampaignGoal:       fromNull(r.CampaignGoal),
		StrategyOverview:   fromNull(r.StrategyOverview),
		PlatformsUsed:      []string(r.PlatformsUsed),
		CampaignLink:       fromNull(r.CampaignLink),
		DesignType:         fromNull(r.DesignType),
		ClientName:         fromNull(r.ClientName),
		ProjectOutcome:     fromNull(r.ProjectOutcome),
		VideoPurpose:       fromNull(r.VideoPurpose),
		ClientOrganization: fromNull(r.ClientOrganization),
		VideoLink:          fromNull(r.VideoLink),
		KeyResults:         fromNull(r.KeyResults),
	}

	return &models.Project{
		ID:              r.ID,
		Title:           r.Title,
		Category:        category,
		Description:     r.Description,
		Technologies:    technologies,
		ResultsAchieved: fromNull(r.ResultsAchieved),
		ImageURL:        r.ImageURL,
		GithubURL:       fromNull(r.GithubURL),
		CompletionDate:  r.CompletionDate,
		CreatedAt:       r.CreatedAt,
		Details:         fields.For(category),
	}
}

// insertArgs flattens a candidate record into the INSERT argument list.
// Detail columns of other categories are bound as NULL.
func insertArgs(p *models.NewProject) []any {
	f := models.FlattenDetails(p.Details)

	technologies := pq.StringArray(p.Technologies)
	if technologies == nil {
		technologies = pq.StringArray{}
	}

	var platforms any
	if f.PlatformsUsed != nil {
		platforms = pq.StringArray(f.PlatformsUsed)
	}

	var completionDate any
	if p.CompletionDate != nil {
		completionDate = *p.CompletionDate
	}

	return []any{
		p.Title, string(p.Category), p.Description,
		toNull(f.WebsiteURL),
		toNull(f.CampaignGoal), toNull(f.StrategyOverview), platforms, toNull(f.CampaignLink),
		toNull(f.DesignType), toNull(f.ClientName), toNull(f.ProjectOutcome),
		toNull(f.VideoPurpose), toNull(f.ClientOrganization), toNull(f.VideoLink), toNull(f.KeyResults),
		technologies, toNull(p.ResultsAchieved), p.ImageURL, toNull(p.GithubURL), completionDate,
	}
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
