package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/queue"
)

// ReplyIngestor records inbound replies: it fills the response field on the
// prospect's latest outreach record and advances the prospect to REPLIED.
// This is the only path that moves the funnel past MESSAGE_SENT.
type ReplyIngestor struct {
	Prospects ProspectRepositoryInterface
	Outreach  OutreachRepositoryInterface
	Analytics *AnalyticsAggregator
}

func NewReplyIngestor(
	prospects ProspectRepositoryInterface,
	outreach OutreachRepositoryInterface,
	analytics *AnalyticsAggregator,
) *ReplyIngestor {
	return &ReplyIngestor{
		Prospects: prospects,
		Outreach:  outreach,
		Analytics: analytics,
	}
}

func (r *ReplyIngestor) HandleReply(ctx context.Context, payload queue.ReplyPayload) error {
	prospect, err := r.Prospects.FindByID(ctx, payload.ProspectID)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			return &DomainError{
				Code:    "PROSPECT_NOT_FOUND",
				Message: "reply for unknown prospect: " + payload.ProspectID,
			}
		}
		return fmt.Errorf("failed to load prospect: %w", err)
	}

	last, err := r.Outreach.LastByProspect(ctx, prospect.ID)
	if err != nil {
		return fmt.Errorf("failed to load last outreach: %w", err)
	}
	if last == nil {
		return &DomainError{
			Code:    "NO_OUTREACH",
			Message: "reply for prospect with no outreach on record: " + prospect.ID,
		}
	}

	if err := r.Outreach.SetResponse(ctx, last.ID, payload.Response); err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}

	// Forward-only: a CONVERTED prospect that writes again stays CONVERTED.
	if prospect.Status.CanAdvanceTo(entity.StatusReplied) {
		err := r.Prospects.AdvanceStatus(ctx, prospect.ID,
			prospect.Status, entity.StatusReplied,
			ProspectTimestamps{},
		)
		if err != nil {
			return fmt.Errorf("failed to advance prospect: %w", err)
		}

		if err := r.Analytics.Recompute(ctx, prospect.CampaignID); err != nil {
			log.Printf("⚠️ Failed to recompute analytics for campaign %s: %v", prospect.CampaignID, err)
		}
	}

	return nil
}
