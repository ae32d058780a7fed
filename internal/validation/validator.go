package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio-catalog-api/internal/models"
)

// RequiredFields lists the fields every create must supply, in the order they are reported
var RequiredFields = []string{"title", "category", "description", "imageUrl"}

// RequiredDetailFields lists the fields the submission form asks for per category.
// The API stores these as nullable columns and does not enforce them.
var RequiredDetailFields = map[models.Category][]string{
	models.CategoryWebsite:  {"websiteUrl"},
	models.CategoryCampaign: {"campaignGoal", "strategyOverview", "platformsUsed"},
	models.CategoryDesign:   {"designType", "projectOutcome"},
	models.CategoryVideo:    {"videoPurpose", "videoLink", "keyResults"},
}

// ErrInvalidCategory is returned when a create names a category outside the four known ones
var ErrInvalidCategory = errors.New("invalid category")

// MissingFieldsError is returned when required create fields are empty
type MissingFieldsError struct {
	Missing []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateCreate checks the common required fields of a create request.
// It returns a *MissingFieldsError naming every empty field, or nil.
func ValidateCreate(req *models.CreateProjectRequest) error {
	values := map[string]string{
		"title":       req.Title,
		"category":    req.Category,
		"description": req.Description,
		"imageUrl":    req.ImageURL,
	}

	var missing []string
	for _, field := range RequiredFields {
		if isBlank(values[field]) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Missing: missing}
	}
	return nil
}

// ValidateCategory resolves a create request's category
func ValidateCategory(req *models.CreateProjectRequest) (models.Category, error) {
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		return "", ErrInvalidCategory
	}
	return category, nil
}

// MissingDetailFields returns the form-required detail fields of req's category
// that are empty. Fields of other categories are ignored.
func MissingDetailFields(req *models.CreateProjectRequest) []string {
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil
	}

	values := map[string]bool{
		"websiteUrl":       !isBlank(req.WebsiteURL),
		"campaignGoal":     !isBlank(req.CampaignGoal),
		"strategyOverview": !isBlank(req.StrategyOverview),
		"platformsUsed":    len(req.PlatformsUsed) > 0,
		"designType":       !isBlank(req.DesignType),
		"projectOutcome":   !isBlank(req.ProjectOutcome),
		"videoPurpose":     !isBlank(req.VideoPurpose),
		"videoLink":        !isBlank(req.VideoLink),
		"keyResults":       !isBlank(req.KeyResults),
	}

	var missing []string
	for _, field := range RequiredDetailFields[category] {
		if !values[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
