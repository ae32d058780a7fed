package catalogclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/portfolio-catalog-api/internal/models"
)

const (
	SuccessMessage    = "Project uploaded successfully!"
	ImageRequiredText = "Please upload an image"
)

// ErrImageRequired is returned by Submit when no image has been attached
var ErrImageRequired = errors.New(ImageRequiredText)

// Creator is the part of the API the form writes to
type Creator interface {
	CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error)
}

// FormData holds every field of every category at once.
// Switching Category leaves the other categories' input untouched.
type FormData struct {
	Title           string
	Description     string
	Category        models.Category
	Technologies    string // comma separated
	ImageURL        string
	GithubURL       string
	ResultsAchieved string

	WebsiteURL string

	CampaignGoal     string
	StrategyOverview string
	PlatformsUsed    string // comma separated
	CampaignLink     string

	DesignType     string
	ClientName     string
	ProjectOutcome string

	VideoPurpose       string
	ClientOrganization string
	VideoLink          string
	KeyResults         string
}

// DefaultFormData is the empty form
func DefaultFormData() FormData {
	return FormData{Category: models.CategoryWebsite}
}

// Field is one visible input of the form
type Field struct {
	Name  string
	Label string
	Value string
}

// Fields returns the common inputs followed by the inputs of the selected category
func (d *FormData) Fields() []Field {
	fields := []Field{
		{"title", "Title", d.Title},
		{"description", "Description", d.Description},
		{"category", "Category", string(d.Category)},
		{"technologies", "Technologies (comma separated)", d.Technologies},
		{"imageUrl", "Image", d.ImageURL},
		{"githubUrl", "GitHub URL", d.GithubURL},
		{"resultsAchieved", "Results Achieved", d.ResultsAchieved},
	}

	switch d.Category {
	case models.CategoryWebsite:
		fields = append(fields, Field{"websiteUrl", "Website URL", d.WebsiteURL})
	case models.CategoryCampaign:
		fields = append(fields,
			Field{"campaignGoal", "Campaign Goal", d.CampaignGoal},
			Field{"strategyOverview", "Strategy Overview", d.StrategyOverview},
			Field{"platformsUsed", "Platforms Used (comma separated)", d.PlatformsUsed},
			Field{"campaignLink", "Campaign Link", d.CampaignLink},
		)
	case models.CategoryDesign:
		fields = append(fields,
			Field{"designType", "Design Type", d.DesignType},
			Field{"clientName", "Client Name", d.ClientName},
			Field{"projectOutcome", "Project Outcome", d.ProjectOutcome},
		)
	case models.CategoryVideo:
		fields = append(fields,
			Field{"videoPurpose", "Video Purpose", d.VideoPurpose},
			Field{"clientOrganization", "Client/Organization", d.ClientOrganization},
			Field{"videoLink", "Video Link", d.VideoLink},
			Field{"keyResults", "Key Results", d.KeyResults},
		)
	}
	return fields
}

// Request builds the create body. Only the selected category's fields are sent.
func (d *FormData) Request(now time.Time) *models.CreateProjectRequest {
	req := &models.CreateProjectRequest{
		Title:           d.Title,
		Category:        string(d.Category),
		Description:     d.Description,
		Technologies:    SplitList(d.Technologies),
		ImageURL:        d.ImageURL,
		GithubURL:       d.GithubURL,
		ResultsAchieved: d.ResultsAchieved,
		CompletionDate:  now.UTC().Format(time.RFC3339Nano),
	}

	switch d.Category {
	case models.CategoryWebsite:
		req.WebsiteURL = d.WebsiteURL
	case models.CategoryCampaign:
		req.CampaignGoal = d.CampaignGoal
		req.StrategyOverview = d.StrategyOverview
		req.PlatformsUsed = SplitList(d.PlatformsUsed)
		req.CampaignLink = d.CampaignLink
	case models.CategoryDesign:
		req.DesignType = d.DesignType
		req.ClientName = d.ClientName
		req.ProjectOutcome = d.ProjectOutcome
	case models.CategoryVideo:
		req.VideoPurpose = d.VideoPurpose
		req.ClientOrganization = d.ClientOrganization
		req.VideoLink = d.VideoLink
		req.KeyResults = d.KeyResults
	}
	return req
}

// SplitList turns "a, b,,c " into [a b c]
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Form is the submission form: its data plus the last status message
type Form struct {
	Data    FormData
	Message string

	creator  Creator
	uploader Uploader
	now      func() time.Time
}

// NewForm creates an empty form. uploader may be nil when images are set by URL.
func NewForm(creator Creator, uploader Uploader) *Form {
	return &Form{
		Data:     DefaultFormData(),
		creator:  creator,
		uploader: uploader,
		now:      time.Now,
	}
}

// AttachImage uploads an image and stores its hosted URL on the form
func (f *Form) AttachImage(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if f.uploader == nil {
		return errors.New("no upload provider configured")
	}
	url, err := f.uploader.Upload(ctx, name, r, size, contentType)
	if err != nil {
		f.Message = fmt.Sprintf("Image upload failed: %v", err)
		return err
	}
	f.Data.ImageURL = url
	return nil
}

// Submit sends the form. On success the form is reset; on failure it is kept
// and Message carries the server's error.
func (f *Form) Submit(ctx context.Context) (*models.Project, error) {
	f.Message = ""

	if strings.TrimSpace(f.Data.ImageURL) == "" {
		f.Message = ImageRequiredText
		return nil, ErrImageRequired
	}

	project, err := f.creator.CreateProject(ctx, f.Data.Request(f.now()))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			f.Message = apiErr.Message
		} else {
			f.Message = err.Error()
		}
		return nil, err
	}

	f.Data = DefaultFormData()
	f.Message = SuccessMessage
	return project, nil
}
