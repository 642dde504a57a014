package usecase

// ConnectionRunResult is the outcome of one connection-scheduler run.
// Remaining is the cap headroom left after the run.
type ConnectionRunResult struct {
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// FollowUpRunResult is the outcome of one follow-up pass, for one campaign
// or summed over all active campaigns.
type FollowUpRunResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
}

type TemplateInput struct {
	ConnectionMsg  string `json:"connection_msg"`
	FollowUp1      string `json:"follow_up_1"`
	FollowUp2      string `json:"follow_up_2"`
	FollowUp3      string `json:"follow_up_3"`
	FollowUp1Delay int    `json:"follow_up_1_delay"`
	FollowUp2Delay int    `json:"follow_up_2_delay"`
	FollowUp3Delay int    `json:"follow_up_3_delay"`
}

type CreateCampaignInput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	TargetIndustry string         `json:"target_industry"`
	Template       *TemplateInput `json:"message_template"`
}

type CreateCampaignOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	TargetIndustry string `json:"target_industry,omitempty"`
}

type ProspectInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Company    string `json:"company"`
	Industry   string `json:"industry"`
	ProfileURL string `json:"profile_url"`
}

type ImportProspectsInput struct {
	CampaignID string          `json:"campaign_id"`
	Prospects  []ProspectInput `json:"prospects"`
}

type ImportProspectsOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
