package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/linkreach/internal/entity"
)

// AnalyticsAggregator recomputes a campaign's funnel metrics from the
// current status distribution. It always overwrites the whole row; metrics
// are never patched incrementally, so repeated calls with no status change
// are idempotent.
type AnalyticsAggregator struct {
	Prospects ProspectRepositoryInterface
	Analytics AnalyticsRepositoryInterface
	Clock     Clock
}

func NewAnalyticsAggregator(
	prospects ProspectRepositoryInterface,
	analytics AnalyticsRepositoryInterface,
	clock Clock,
) *AnalyticsAggregator {
	return &AnalyticsAggregator{
		Prospects: prospects,
		Analytics: analytics,
		Clock:     clock,
	}
}

func (a *AnalyticsAggregator) Recompute(ctx context.Context, campaignID string) error {
	counts, err := a.Prospects.CountByStatus(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("failed to load status distribution: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	// Every state downstream of a transition counts towards it, CONVERTED
	// included, so the rates stay monotonic as prospects move down the
	// funnel.
	connectionsSent := counts[entity.StatusConnectionSent] +
		counts[entity.StatusConnected] +
		counts[entity.StatusMessageSent] +
		counts[entity.StatusReplied] +
		counts[entity.StatusConverted]

	connectionsAccepted := counts[entity.StatusConnected] +
		counts[entity.StatusMessageSent] +
		counts[entity.StatusReplied] +
		counts[entity.StatusConverted]

	replies := counts[entity.StatusReplied]
	conversions := counts[entity.StatusConverted]

	metrics := &entity.CampaignAnalytics{
		CampaignID:          campaignID,
		TotalProspects:      total,
		ConnectionsSent:     connectionsSent,
		ConnectionsAccepted: connectionsAccepted,
		RepliesReceived:     replies,
		Conversions:         conversions,
		ConnectionRate:      percentage(connectionsAccepted, connectionsSent),
		ResponseRate:        percentage(replies, connectionsAccepted),
		ConversionRate:      percentage(conversions, total),
		UpdatedAt:           a.Clock.Now(),
	}

	if err := a.Analytics.Upsert(ctx, metrics); err != nil {
		return fmt.Errorf("failed to store campaign analytics: %w", err)
	}

	return nil
}

// percentage returns part/whole as a percentage; a zero denominator is a
// defined zero result, never an error.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
