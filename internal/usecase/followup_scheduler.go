package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/queue"
)

// FollowUpScheduler advances CONNECTED prospects through the first message
// and up to two timed follow-ups. Per campaign, three scans run in sequence
// (first message, follow-up 1, follow-up 2); their status/history filters
// make them mutually exclusive, so a prospect gets at most one send per
// invocation.
type FollowUpScheduler struct {
	Campaigns CampaignRepositoryInterface
	Prospects ProspectRepositoryInterface
	Outreach  OutreachRepositoryInterface
	Templates TemplateRepositoryInterface
	Analytics *AnalyticsAggregator
	Transport Transport
	Queue     QueueProducerInterface
	Clock     Clock
	Pacer     Pacer

	locks *campaignLocks
}

func NewFollowUpScheduler(
	campaigns CampaignRepositoryInterface,
	prospects ProspectRepositoryInterface,
	outreach OutreachRepositoryInterface,
	templates TemplateRepositoryInterface,
	analytics *AnalyticsAggregator,
	transport Transport,
	producer QueueProducerInterface,
	clock Clock,
	pacer Pacer,
) *FollowUpScheduler {
	return &FollowUpScheduler{
		Campaigns: campaigns,
		Prospects: prospects,
		Outreach:  outreach,
		Templates: templates,
		Analytics: analytics,
		Transport: transport,
		Queue:     producer,
		Clock:     clock,
		Pacer:     pacer,
		locks:     newCampaignLocks(),
	}
}

// ProcessFollowUps runs the follow-up pass for every ACTIVE campaign. A
// campaign that fails wholesale is logged and skipped; its siblings still
// run.
func (s *FollowUpScheduler) ProcessFollowUps(ctx context.Context) (*FollowUpRunResult, error) {
	campaigns, err := s.Campaigns.ListActive(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list active campaigns: " + err.Error(),
		}
	}

	total := &FollowUpRunResult{}

	for _, campaign := range campaigns {
		if ctx.Err() != nil {
			break
		}

		result, err := s.ProcessCampaignFollowUps(ctx, campaign.ID)
		if err != nil {
			log.Printf("❌ Follow-up pass failed for campaign %s: %v", campaign.ID, err)
			continue
		}
		total.Sent += result.Sent
		total.Skipped += result.Skipped
	}

	return total, nil
}

// ProcessCampaignFollowUps runs the three scans for one campaign. A missing
// template or an unconfigured stage is not an error: that stage is simply
// inactive.
func (s *FollowUpScheduler) ProcessCampaignFollowUps(ctx context.Context, campaignID string) (*FollowUpRunResult, error) {
	// One pass per campaign at a time. Follow-up sends have no
	// status-conditional claim (only FIRST_MESSAGE advances the funnel), so
	// an overlapping pass would pass the same eligibility filter and send
	// twice.
	defer s.locks.acquire(campaignID)()

	template, err := s.Templates.FindByCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return &FollowUpRunResult{}, nil
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load message template: " + err.Error(),
		}
	}

	result := &FollowUpRunResult{}

	// Scan 1: first message for fresh connections.
	firstMsg, err := s.Prospects.ListConnectedWithoutFirstMessage(ctx, campaignID)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list prospects awaiting first message: " + err.Error(),
		}
	}
	s.runScan(ctx, result, firstMsg, template, entity.OutreachFirstMessage, template.FollowUp1)

	// Scan 2: follow-up 1, only when its body and the first-message delay
	// are configured.
	if template.HasFollowUp1Stage() {
		eligible, err := s.readyForFollowUp(ctx, campaignID, entity.OutreachFirstMessage, template.FollowUp1Delay)
		if err != nil {
			return nil, err
		}
		s.runScan(ctx, result, eligible, template, entity.OutreachFollowUp1, template.FollowUp2)
	}

	// Scan 3: follow-up 2, gate cascades on follow-up 1's delay.
	if template.HasFollowUp2Stage() {
		eligible, err := s.readyForFollowUp(ctx, campaignID, entity.OutreachFollowUp1, template.FollowUp2Delay)
		if err != nil {
			return nil, err
		}
		s.runScan(ctx, result, eligible, template, entity.OutreachFollowUp2, template.FollowUp3)
	}

	return result, nil
}

func (s *FollowUpScheduler) runScan(
	ctx context.Context,
	result *FollowUpRunResult,
	prospects []*entity.Prospect,
	template *entity.MessageTemplate,
	outreachType entity.OutreachType,
	body string,
) {
	for i, prospect := range prospects {
		if ctx.Err() != nil {
			return
		}

		if err := s.send(ctx, prospect, outreachType, body); err != nil {
			log.Printf("❌ Failed to send %s to prospect %s: %v", outreachType, prospect.ID, err)
			result.Skipped++
			continue
		}
		result.Sent++

		if i < len(prospects)-1 {
			s.Pacer.Pause(ctx)
		}
	}
}

// readyForFollowUp selects MESSAGE_SENT prospects whose most recent outreach
// is of the given type, was sent at least delayDays ago (inclusive boundary)
// and has no recorded response.
func (s *FollowUpScheduler) readyForFollowUp(
	ctx context.Context,
	campaignID string,
	lastType entity.OutreachType,
	delayDays int,
) ([]*entity.Prospect, error) {
	prospects, err := s.Prospects.ListByStatus(ctx, campaignID, entity.StatusMessageSent, 0)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list messaged prospects: " + err.Error(),
		}
	}

	cutoff := s.Clock.Now().AddDate(0, 0, -delayDays)

	eligible := make([]*entity.Prospect, 0, len(prospects))
	for _, p := range prospects {
		last, err := s.Outreach.LastByProspect(ctx, p.ID)
		if err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to load last outreach: " + err.Error(),
			}
		}
		if last == nil || last.Type != lastType {
			continue
		}
		if last.SentAt.After(cutoff) {
			continue
		}
		if last.Response != "" {
			// They answered; the funnel belongs to the reply collaborator
			// from here on.
			continue
		}
		eligible = append(eligible, p)
	}

	return eligible, nil
}

func (s *FollowUpScheduler) send(ctx context.Context, prospect *entity.Prospect, outreachType entity.OutreachType, body string) error {
	message := Personalize(body, prospect)

	if err := s.Transport.SendMessage(ctx, prospect, message); err != nil {
		return fmt.Errorf("transport failure: %w", err)
	}

	now := s.Clock.Now()

	if outreachType == entity.OutreachFirstMessage {
		// First message advances the funnel. Later follow-ups only stamp
		// the contact time; progression past MESSAGE_SENT is driven by
		// replies, never by the scheduler.
		err := s.Prospects.AdvanceStatus(ctx, prospect.ID,
			entity.StatusConnected, entity.StatusMessageSent,
			ProspectTimestamps{LastContactedAt: &now},
		)
		if err != nil {
			return fmt.Errorf("failed to advance prospect: %w", err)
		}
	} else {
		if err := s.Prospects.TouchLastContacted(ctx, prospect.ID, now); err != nil {
			return fmt.Errorf("failed to stamp contact time: %w", err)
		}
	}

	record := entity.NewOutreachRecord(prospect.ID, outreachType, message, now)
	if err := s.Outreach.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append outreach record: %w", err)
	}

	if s.Queue != nil {
		err := s.Queue.PublishOutreachSent(ctx, queue.OutreachSentPayload{
			ProspectID: prospect.ID,
			CampaignID: prospect.CampaignID,
			Type:       string(outreachType),
			ProfileURL: prospect.ProfileURL,
			SentAt:     now,
		})
		if err != nil {
			log.Printf("⚠️ Failed to publish sent event for %s: %v", prospect.ID, err)
		}
	}

	if outreachType == entity.OutreachFirstMessage {
		if err := s.Analytics.Recompute(ctx, prospect.CampaignID); err != nil {
			log.Printf("⚠️ Failed to recompute analytics for campaign %s: %v", prospect.CampaignID, err)
		}
	}

	return nil
}
