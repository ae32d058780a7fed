package catalogclient

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/portfolio-catalog-api/internal/models"
)

// Filter selects which projects the gallery shows
type Filter string

// FilterAll shows every category
const FilterAll Filter = "All"

// Filters lists the five gallery choices in display order
var Filters = []Filter{
	FilterAll,
	Filter(models.CategoryWebsite),
	Filter(models.CategoryCampaign),
	Filter(models.CategoryDesign),
	Filter(models.CategoryVideo),
}

// Status is the gallery's load state
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Lister is the part of the API the gallery reads from
type Lister interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error)
}

// Card is one rendered gallery entry
type Card struct {
	ImageURL    string
	Category    string
	Title       string
	Description string
	Tags        []string
	LiveURL     string // empty when the project has no live link
	CodeURL     string // empty when the project has no repository
}

// Gallery holds the browsing state: the selected filter and the last load result
type Gallery struct {
	lister   Lister
	filter   Filter
	status   Status
	err      error
	projects []models.Project
}

// NewGallery creates a gallery showing every category
func NewGallery(lister Lister) *Gallery {
	return &Gallery{
		lister: lister,
		filter: FilterAll,
		status: StatusLoading,
	}
}

func (g *Gallery) Filter() Filter { return g.filter }
func (g *Gallery) Status() Status { return g.status }
func (g *Gallery) Err() error     { return g.err }

// Load fetches the projects for the current filter
func (g *Gallery) Load(ctx context.Context) error {
	g.status = StatusLoading
	g.err = nil

	var (
		projects []models.Project
		err      error
	)
	if g.filter == FilterAll {
		projects, err = g.lister.ListProjects(ctx)
	} else {
		projects, err = g.lister.ListProjectsByCategory(ctx, string(g.filter))
	}
	if err != nil {
		g.status = StatusError
		g.err = err
		g.projects = nil
		return err
	}

	g.status = StatusReady
	g.projects = projects
	return nil
}

// SetFilter switches the filter and reloads
func (g *Gallery) SetFilter(ctx context.Context, f Filter) error {
	if !validFilter(f) {
		return fmt.Errorf("unknown filter %q", f)
	}
	g.filter = f
	return g.Load(ctx)
}

func validFilter(f Filter) bool {
	for _, candidate := range Filters {
		if candidate == f {
			return true
		}
	}
	return false
}

// Cards projects the loaded records into cards
func (g *Gallery) Cards() []Card {
	cards := make([]Card, 0, len(g.projects))
	for _, p := range g.projects {
		cards = append(cards, newCard(p))
	}
	return cards
}

func newCard(p models.Project) Card {
	card := Card{
		ImageURL:    p.ImageURL,
		Category:    string(p.Category),
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Technologies,
	}
	if p.GithubURL != nil {
		card.CodeURL = *p.GithubURL
	}

	var live *string
	switch d := p.Details.(type) {
	case models.WebsiteDetails:
		live = d.WebsiteURL
	case models.CampaignDetails:
		live = d.CampaignLink
	case models.VideoDetails:
		live = d.VideoLink
	}
	if live != nil {
		card.LiveURL = *live
	}
	return card
}

// Render writes the gallery as plain text
func (g *Gallery) Render(w io.Writer) error {
	switch g.status {
	case StatusLoading:
		_, err := fmt.Fprintln(w, "Loading projects...")
		return err
	case StatusError:
		_, err := fmt.Fprintf(w, "Error: %v\n", g.err)
		return err
	}

	cards := g.Cards()
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No projects found.")
		return err
	}

	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n", card.Category, card.Title)
		fmt.Fprintf(&b, "  %s\n", card.Description)
		fmt.Fprintf(&b, "  image: %s\n", card.ImageURL)
		if len(card.Tags) > 0 {
			fmt.Fprintf(&b, "  tags:  %s\n", strings.Join(card.Tags, ", "))
		}
		if card.LiveURL != "" {
			fmt.Fprintf(&b, "  live:  %s\n", card.LiveURL)
		}
		if card.CodeURL != "" {
			fmt.Fprintf(&b, "  code:  %s\n", card.CodeURL)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
