package models

import (
	"encoding/json"
	"time"
)

// Category tags a project and decides which detail fields apply to it
type Category string

const (
	CategoryWebsite  Category = "Website Projects"
	CategoryCampaign Category = "Digital Campaign"
	CategoryDesign   Category = "Graphic Design"
	CategoryVideo    Category = "Video Editing"
)

// Categories lists the valid categories in display order
var Categories = []Category{
	CategoryWebsite,
	CategoryCampaign,
	CategoryDesign,
	CategoryVideo,
}

// ValidCategories defines allowed project categories
var ValidCategories = map[Category]bool{
	CategoryWebsite:  true,
	CategoryCampaign: true,
	CategoryDesign:   true,
	CategoryVideo:    true,
}

// ParseCategory reports whether s names one of the four categories
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, ValidCategories[c]
}

// Project represents a portfolio entry.
//
// The common fields live on Project itself; the fields that only make sense for
// one category live in Details. Details is nil when the stored category is not
// one of the known values.
type Project struct {
	ID              int64
	Title           string
	Category        Category
	Description     string
	Technologies    []string
	ResultsAchieved *string
	ImageURL        string
	GithubURL       *string
	CompletionDate  time.Time
	CreatedAt       time.Time
	Details         Details
}

// NewProject is a candidate record that has not been stored yet.
// CompletionDate is kept as the raw client text; the database parses it.
type NewProject struct {
	Title           string
	Category        Category
	Description     string
	Technologies    []string
	ResultsAchieved *string
	ImageURL        string
	GithubURL       *string
	CompletionDate  *string
	Details         Details
}

// projectJSON is the wire shape of a Project: one flat camelCase object
type projectJSON struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Category        Category  `json:"category"`
	Description     string    `json:"description"`
	Technologies    []string  `json:"technologies"`
	ResultsAchieved *string   `json:"resultsAchieved"`
	ImageURL        string    `json:"imageUrl"`
	GithubURL       *string   `json:"githubUrl"`
	CompletionDate  time.Time `json:"completionDate"`
	CreatedAt       time.Time `json:"createdAt"`
	DetailFields
}

// MarshalJSON writes every detail key; keys of other categories are null
func (p Project) MarshalJSON() ([]byte, error) {
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return json.Marshal(projectJSON{
		ID:              p.ID,
		Title:           p.Title,
		Category:        p.Category,
		Description:     p.Description,
		Technologies:    technologies,
		ResultsAchieved: p.ResultsAchieved,
		ImageURL:        p.ImageURL,
		GithubURL:       p.GithubURL,
		CompletionDate:  p.CompletionDate,
		CreatedAt:       p.CreatedAt,
		DetailFields:    FlattenDetails(p.Details),
	})
}

// UnmarshalJSON rebuilds Details from the category tag
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw projectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project{
		ID:              raw.ID,
		Title:           raw.Title,
		Category:        raw.Category,
		Description:     raw.Description,
		Technologies:    raw.Technologies,
		ResultsAchieved: raw.ResultsAchieved,
		ImageURL:        raw.ImageURL,
		GithubURL:       raw.GithubURL,
		CompletionDate:  raw.CompletionDate,
		CreatedAt:       raw.CreatedAt,
		Details:         raw.DetailFields.For(raw.Category),
	}
	return nil
}

// CreateProjectRequest is the body of POST /api/projects.
// Empty strings mean the field was not supplied.
type CreateProjectRequest struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Technologies    []string `json:"technologies"`
	ResultsAchieved string   `json:"resultsAchieved,omitempty"`
	ImageURL        string   `json:"imageUrl"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	CompletionDate  string   `json:"completionDate,omitempty"`

	// Website Projects
	WebsiteURL string `json:"websiteUrl,omitempty"`

	// Digital Campaign
	CampaignGoal     string   `json:"campaignGoal,omitempty"`
	StrategyOverview string   `json:"strategyOverview,omitempty"`
	PlatformsUsed    []string `json:"platformsUsed,omitempty"`
	CampaignLink     string   `json:"campaignLink,omitempty"`

	// Graphic Design
	DesignType     string `json:"designType,omitempty"`
	ClientName     string `json:"clientName,omitempty"`
	ProjectOutcome string `json:"projectOutcome,omitempty"`

	// Video Editing
	VideoPurpose       string `json:"videoPurpose,omitempty"`
	ClientOrganization string `json:"clientOrganization,omitempty"`
	VideoLink          string `json:"videoLink,omitempty"`
	KeyResults         string `json:"keyResults,omitempty"`
}

// ToNewProject builds the candidate record for category c.
// Detail fields that belong to other categories are dropped.
func (r *CreateProjectRequest) ToNewProject(c Category) *NewProject {
	technologies := r.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	fields := DetailFields{
		WebsiteURL:         optional(r.WebsiteURL),
		CampaignGoal:       optional(r.CampaignGoal),
		StrategyOverview:   optional(r.StrategyOverview),
		PlatformsUsed:      r.PlatformsUsed,
		CampaignLink:       optional(r.CampaignLink),
		DesignType:         optional(r.DesignType),
		ClientName:         optional(r.ClientName),
		ProjectOutcome:     optional(r.ProjectOutcome),
		VideoPurpose:       optional(r.VideoPurpose),
		ClientOrganization: optional(r.ClientOrganization),
		VideoLink:          optional(r.VideoLink),
		KeyResults:         optional(r.KeyResults),
	}

	return &NewProject{
		Title:           r.Title,
		Category:        c,
		Description:     r.Description,
		Technologies:    technologies,
		ResultsAchieved: optional(r.ResultsAchieved),
		ImageURL:        r.ImageURL,
		GithubURL:       optional(r.GithubURL),
		CompletionDate:  optional(r.CompletionDate),
		Details:         fields.For(c),
	}
}

// optional maps an empty string to nil
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
