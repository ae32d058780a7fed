package models

// Details holds the fields that only apply to a single category.
// The four implementations are WebsiteDetails, CampaignDetails,
// DesignDetails and VideoDetails.
type Details interface {
	Category() Category
	isDetails()
}

// WebsiteDetails applies to Website Projects
type WebsiteDetails struct {
	WebsiteURL *string
}

// CampaignDetails applies to Digital Campaign
type CampaignDetails struct {
	CampaignGoal     *string
	StrategyOverview *string
	PlatformsUsed    []string
	CampaignLink     *string
}

// DesignDetails applies to Graphic Design
type DesignDetails struct {
	DesignType     *string
	ClientName     *string
	ProjectOutcome *string
}

// VideoDetails applies to Video Editing
type VideoDetails struct {
	VideoPurpose       *string
	ClientOrganization *string
	VideoLink          *string
	KeyResults         *string
}

func (WebsiteDetails) Category() Category  { return CategoryWebsite }
func (CampaignDetails) Category() Category { return CategoryCampaign }
func (DesignDetails) Category() Category   { return CategoryDesign }
func (VideoDetails) Category() Category    { return CategoryVideo }

func (WebsiteDetails) isDetails()  {}
func (CampaignDetails) isDetails() {}
func (DesignDetails) isDetails()   {}
func (VideoDetails) isDetails()    {}

// DetailFields is the flat, nullable superset of every category's fields.
// It is the shape used on the wire and in the projects table.
type DetailFields struct {
	WebsiteURL *string `json:"websiteUrl"`

	CampaignGoal     *string  `json:"campaignGoal"`
	StrategyOverview *string  `json:"strategyOverview"`
	PlatformsUsed    []string `json:"platformsUsed"`
	CampaignLink     *string  `json:"campaignLink"`

	DesignType     *string `json:"designType"`
	ClientName     *string `json:"clientName"`
	ProjectOutcome *string `json:"projectOutcome"`

	VideoPurpose       *string `json:"videoPurpose"`
	ClientOrganization *string `json:"clientOrganization"`
	VideoLink          *string `json:"videoLink"`
	KeyResults         *string `json:"keyResults"`
}

// For picks the fields that belong to category c and ignores the rest.
// It returns nil for an unknown category.
func (f DetailFields) For(c Category) Details {
	switch c {
	case CategoryWebsite:
		return WebsiteDetails{WebsiteURL: f.WebsiteURL}
	case CategoryCampaign:
		return CampaignDetails{
			CampaignGoal:     f.CampaignGoal,
			StrategyOverview: f.StrategyOverview,
			PlatformsUsed:    f.PlatformsUsed,
			CampaignLink:     f.CampaignLink,
		}
	case CategoryDesign:
		return DesignDetails{
			DesignType:     f.DesignType,
			ClientName:     f.ClientName,
			ProjectOutcome: f.ProjectOutcome,
		}
	case CategoryVideo:
		return VideoDetails{
			VideoPurpose:       f.VideoPurpose,
			ClientOrganization: f.ClientOrganization,
			VideoLink:          f.VideoLink,
			KeyResults:         f.KeyResults,
		}
	}
	return nil
}

// FlattenDetails spreads d over the flat field set; everything else stays nil
func FlattenDetails(d Details) DetailFields {
	var f DetailFields
	switch v := d.(type) {
	case WebsiteDetails:
		f.WebsiteURL = v.WebsiteURL
	case CampaignDetails:
		f.CampaignGoal = v.CampaignGoal
		f.StrategyOverview = v.StrategyOverview
		f.PlatformsUsed = v.PlatformsUsed
		f.CampaignLink = v.CampaignLink
	case DesignDetails:
		f.DesignType = v.DesignType
		f.ClientName = v.ClientName
		f.ProjectOutcome = v.ProjectOutcome
	case VideoDetails:
		f.VideoPurpose = v.VideoPurpose
		f.ClientOrganization = v.ClientOrganization
		f.VideoLink = v.VideoLink
		f.KeyResults = v.KeyResults
	}
	return f
}
