package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/queue"
)

const DefaultDailyCap = 50

// ConnectionScheduler sends connection requests to PENDING prospects,
// bounded by the campaign's daily cap. The cap window resets at local
// midnight.
type ConnectionScheduler struct {
	Campaigns CampaignRepositoryInterface
	Prospects ProspectRepositoryInterface
	Outreach  OutreachRepositoryInterface
	Templates TemplateRepositoryInterface
	Analytics *AnalyticsAggregator
	Transport Transport
	Queue     QueueProducerInterface
	Email     EmailService
	Clock     Clock
	Pacer     Pacer

	DailyCap      int
	OperatorEmail string

	locks *campaignLocks
}

func NewConnectionScheduler(
	campaigns CampaignRepositoryInterface,
	prospects ProspectRepositoryInterface,
	outreach OutreachRepositoryInterface,
	templates TemplateRepositoryInterface,
	analytics *AnalyticsAggregator,
	transport Transport,
	producer QueueProducerInterface,
	email EmailService,
	clock Clock,
	pacer Pacer,
	dailyCap int,
) *ConnectionScheduler {
	if dailyCap <= 0 {
		dailyCap = DefaultDailyCap
	}
	return &ConnectionScheduler{
		Campaigns: campaigns,
		Prospects: prospects,
		Outreach:  outreach,
		Templates: templates,
		Analytics: analytics,
		Transport: transport,
		Queue:     producer,
		Email:     email,
		Clock:     clock,
		Pacer:     pacer,
		DailyCap:  dailyCap,
		locks:     newCampaignLocks(),
	}
}

// SendConnectionRequests runs one connection batch for the campaign. A cap
// already exhausted returns {0,0,0} without touching any prospect; a single
// failed send never aborts the rest of the batch.
func (s *ConnectionScheduler) SendConnectionRequests(ctx context.Context, campaignID string) (*ConnectionRunResult, error) {
	// One run per campaign at a time. The transport call goes out before the
	// status-conditional claim, so without serialization an overlapping run
	// would deliver a second request even though only one claim lands.
	defer s.locks.acquire(campaignID)()

	campaign, err := s.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return nil, &DomainError{
				Code:    "CAMPAIGN_NOT_FOUND",
				Message: "campaign not found: " + campaignID,
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load campaign: " + err.Error(),
		}
	}

	sentToday, err := s.Prospects.CountSentSince(ctx, campaignID, startOfDay(s.Clock.Now()))
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to count today's connections: " + err.Error(),
		}
	}

	remaining := s.DailyCap - sentToday
	if remaining <= 0 {
		return &ConnectionRunResult{Sent: 0, Failed: 0, Remaining: 0}, nil
	}

	prospects, err := s.Prospects.ListByStatus(ctx, campaignID, entity.StatusPending, remaining)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list pending prospects: " + err.Error(),
		}
	}

	template, err := s.Templates.FindByCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			// The store's referential rules should make this impossible.
			// Per-item failure, not a batch abort: the prospects stay
			// PENDING and become eligible again once a template exists.
			log.Printf("⚠️ Campaign %s has no message template, %d prospects left pending", campaignID, len(prospects))
			return &ConnectionRunResult{Sent: 0, Failed: len(prospects), Remaining: remaining}, nil
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load message template: " + err.Error(),
		}
	}

	sent := 0
	failed := 0

	for i, prospect := range prospects {
		if ctx.Err() != nil {
			// Batch cancelled. Already-sent messages stand.
			break
		}

		if err := s.sendConnectionRequest(ctx, prospect, template); err != nil {
			log.Printf("❌ Failed to send connection to %s: %v", prospect.ProfileURL, err)
			failed++
			continue
		}
		sent++

		if i < len(prospects)-1 {
			s.Pacer.Pause(ctx)
		}
	}

	if s.Email != nil && s.OperatorEmail != "" && sent+failed > 0 {
		go s.Email.SendRunSummary(s.OperatorEmail, campaign.Name, sent, failed)
	}

	return &ConnectionRunResult{
		Sent:      sent,
		Failed:    failed,
		Remaining: remaining - sent,
	}, nil
}

func (s *ConnectionScheduler) sendConnectionRequest(ctx context.Context, prospect *entity.Prospect, template *entity.MessageTemplate) error {
	message := Personalize(template.ConnectionMsg, prospect)

	if err := s.Transport.SendConnectionRequest(ctx, prospect, message); err != nil {
		return fmt.Errorf("transport failure: %w", err)
	}

	now := s.Clock.Now()

	// Conditional on PENDING so a concurrent batch cannot double-claim the
	// prospect after the transport call.
	err := s.Prospects.AdvanceStatus(ctx, prospect.ID,
		entity.StatusPending, entity.StatusConnectionSent,
		ProspectTimestamps{ConnectionSentAt: &now},
	)
	if err != nil {
		return fmt.Errorf("failed to advance prospect: %w", err)
	}

	record := entity.NewOutreachRecord(prospect.ID, entity.OutreachConnectionRequest, message, now)
	if err := s.Outreach.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append outreach record: %w", err)
	}

	if s.Queue != nil {
		err := s.Queue.PublishOutreachSent(ctx, queue.OutreachSentPayload{
			ProspectID: prospect.ID,
			CampaignID: prospect.CampaignID,
			Type:       string(entity.OutreachConnectionRequest),
			ProfileURL: prospect.ProfileURL,
			SentAt:     now,
		})
		if err != nil {
			// Event fan-out is best effort; the log already has the send.
			log.Printf("⚠️ Failed to publish sent event for %s: %v", prospect.ID, err)
		}
	}

	if err := s.Analytics.Recompute(ctx, prospect.CampaignID); err != nil {
		log.Printf("⚠️ Failed to recompute analytics for campaign %s: %v", prospect.CampaignID, err)
	}

	return nil
}
