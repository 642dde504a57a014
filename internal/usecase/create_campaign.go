package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/templates"
)

// Default stage delays in days, matching the stock templates.
const (
	DefaultFollowUp1Delay = 3
	DefaultFollowUp2Delay = 7
	DefaultFollowUp3Delay = 14
)

// CreateCampaignUseCase creates a campaign together with its message
// template and an empty analytics row. When no template bodies are supplied
// the built-in library for the target industry seeds them.
type CreateCampaignUseCase struct {
	Campaigns CampaignRepositoryInterface
	Templates TemplateRepositoryInterface
	Analytics *AnalyticsAggregator
}

func NewCreateCampaignUseCase(
	campaigns CampaignRepositoryInterface,
	templateRepo TemplateRepositoryInterface,
	analytics *AnalyticsAggregator,
) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{
		Campaigns: campaigns,
		Templates: templateRepo,
		Analytics: analytics,
	}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, input CreateCampaignInput) (*CreateCampaignOutput, error) {
	campaign, err := entity.NewCampaign(input.Name, input.Description, input.TargetIndustry)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	template := uc.buildTemplate(campaign, input.Template)
	if template.ConnectionMsg == "" {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "a connection message is required (supply one or pick an industry with a stock template)",
		}
	}

	if err := uc.Campaigns.Create(ctx, campaign); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist campaign: " + err.Error(),
		}
	}

	if err := uc.Templates.Create(ctx, template); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist message template: " + err.Error(),
		}
	}

	// Seed the analytics row so dashboards see zeros instead of a gap.
	if err := uc.Analytics.Recompute(ctx, campaign.ID); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to seed campaign analytics: " + err.Error(),
		}
	}

	return &CreateCampaignOutput{
		ID:             campaign.ID,
		Name:           campaign.Name,
		Status:         string(campaign.Status),
		TargetIndustry: campaign.TargetIndustry,
	}, nil
}

func (uc *CreateCampaignUseCase) buildTemplate(campaign *entity.Campaign, input *TemplateInput) *entity.MessageTemplate {
	template := &entity.MessageTemplate{
		ID:             uuid.New().String(),
		CampaignID:     campaign.ID,
		Industry:       campaign.TargetIndustry,
		FollowUp1Delay: DefaultFollowUp1Delay,
		FollowUp2Delay: DefaultFollowUp2Delay,
		FollowUp3Delay: DefaultFollowUp3Delay,
	}

	if input != nil {
		template.ConnectionMsg = input.ConnectionMsg
		template.FollowUp1 = input.FollowUp1
		template.FollowUp2 = input.FollowUp2
		template.FollowUp3 = input.FollowUp3
		if input.FollowUp1Delay > 0 {
			template.FollowUp1Delay = input.FollowUp1Delay
		}
		if input.FollowUp2Delay > 0 {
			template.FollowUp2Delay = input.FollowUp2Delay
		}
		if input.FollowUp3Delay > 0 {
			template.FollowUp3Delay = input.FollowUp3Delay
		}
	}

	if template.ConnectionMsg == "" && campaign.TargetIndustry != "" {
		if stock, ok := templates.ByIndustry(campaign.TargetIndustry); ok {
			template.ConnectionMsg = stock.ConnectionMsg
			template.FollowUp1 = stock.FollowUp1
			template.FollowUp2 = stock.FollowUp2
			template.FollowUp3 = stock.FollowUp3
		}
	}

	return template
}
