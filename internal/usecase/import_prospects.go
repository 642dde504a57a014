package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

// ImportProspectsUseCase bulk-adds prospects to a campaign. Profile URLs the
// campaign already has are skipped, so re-uploading a list is harmless.
type ImportProspectsUseCase struct {
	Campaigns CampaignRepositoryInterface
	Prospects ProspectRepositoryInterface
	Analytics *AnalyticsAggregator
}

func NewImportProspectsUseCase(
	campaigns CampaignRepositoryInterface,
	prospects ProspectRepositoryInterface,
	analytics *AnalyticsAggregator,
) *ImportProspectsUseCase {
	return &ImportProspectsUseCase{
		Campaigns: campaigns,
		Prospects: prospects,
		Analytics: analytics,
	}
}

func (uc *ImportProspectsUseCase) Execute(ctx context.Context, input ImportProspectsInput) (*ImportProspectsOutput, error) {
	if len(input.Prospects) == 0 {
		return &ImportProspectsOutput{}, nil
	}

	if _, err := uc.Campaigns.FindByID(ctx, input.CampaignID); err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return nil, &DomainError{
				Code:    "CAMPAIGN_NOT_FOUND",
				Message: "campaign not found: " + input.CampaignID,
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load campaign: " + err.Error(),
		}
	}

	batch := make([]*entity.Prospect, 0, len(input.Prospects))
	for _, row := range input.Prospects {
		p, err := entity.NewProspect(input.CampaignID, row.FirstName, row.Company, row.Industry, row.ProfileURL)
		if err != nil {
			return nil, &DomainError{
				Code:    "VALIDATION_ERROR",
				Message: "invalid prospect " + row.ProfileURL + ": " + err.Error(),
			}
		}
		p.LastName = row.LastName
		batch = append(batch, p)
	}

	inserted, err := uc.Prospects.CreateMany(ctx, batch)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to insert prospects: " + err.Error(),
		}
	}

	if err := uc.Analytics.Recompute(ctx, input.CampaignID); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to recompute analytics: " + err.Error(),
		}
	}

	return &ImportProspectsOutput{
		Imported: inserted,
		Skipped:  len(batch) - inserted,
	}, nil
}
