package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

// CampaignSummary is a campaign as the dashboard lists it: the campaign row
// plus its prospect count and funnel metrics. Analytics is nil for a
// campaign whose row has not been seeded yet.
type CampaignSummary struct {
	entity.Campaign
	ProspectCount int                       `json:"prospect_count"`
	Analytics     *entity.CampaignAnalytics `json:"analytics,omitempty"`
}

type ListCampaignsUseCase struct {
	Campaigns CampaignRepositoryInterface
	Prospects ProspectRepositoryInterface
	Analytics AnalyticsRepositoryInterface
}

func NewListCampaignsUseCase(
	campaigns CampaignRepositoryInterface,
	prospects ProspectRepositoryInterface,
	analytics AnalyticsRepositoryInterface,
) *ListCampaignsUseCase {
	return &ListCampaignsUseCase{
		Campaigns: campaigns,
		Prospects: prospects,
		Analytics: analytics,
	}
}

func (uc *ListCampaignsUseCase) Execute(ctx context.Context) ([]*CampaignSummary, error) {
	campaigns, err := uc.Campaigns.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list campaigns: " + err.Error(),
		}
	}

	summaries := make([]*CampaignSummary, 0, len(campaigns))
	for _, campaign := range campaigns {
		counts, err := uc.Prospects.CountByStatus(ctx, campaign.ID)
		if err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to count prospects for campaign " + campaign.ID + ": " + err.Error(),
			}
		}

		total := 0
		for _, n := range counts {
			total += n
		}

		metrics, err := uc.Analytics.FindByCampaign(ctx, campaign.ID)
		if err != nil && !errors.Is(err, entity.ErrAnalyticsNotFound) {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to load analytics for campaign " + campaign.ID + ": " + err.Error(),
			}
		}

		summaries = append(summaries, &CampaignSummary{
			Campaign:      *campaign,
			ProspectCount: total,
			Analytics:     metrics,
		})
	}

	return summaries, nil
}
