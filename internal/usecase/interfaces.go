package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/queue"
)

// ProspectTimestamps carries the nullable event timestamps a status change
// may stamp. A nil field is left untouched.
type ProspectTimestamps struct {
	ConnectionSentAt *time.Time
	LastContactedAt  *time.Time
}

type ProspectRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.Prospect, error)

	// CountSentSince counts prospects in the campaign whose connection
	// request went out at or after the given instant.
	CountSentSince(ctx context.Context, campaignID string, since time.Time) (int, error)

	// ListByStatus returns up to limit prospects in a stable order
	// (creation order). limit <= 0 means no limit.
	ListByStatus(ctx context.Context, campaignID string, status entity.ProspectStatus, limit int) ([]*entity.Prospect, error)

	// ListConnectedWithoutFirstMessage returns CONNECTED prospects with no
	// FIRST_MESSAGE outreach on record yet.
	ListConnectedWithoutFirstMessage(ctx context.Context, campaignID string) ([]*entity.Prospect, error)

	// AdvanceStatus moves a prospect from one status to the next and stamps
	// the given timestamps in the same statement. The update is conditional
	// on the current status, so two concurrent batches cannot both claim
	// the same prospect.
	AdvanceStatus(ctx context.Context, id string, from, to entity.ProspectStatus, ts ProspectTimestamps) error

	// TouchLastContacted stamps last_contacted_at without a status change.
	TouchLastContacted(ctx context.Context, id string, at time.Time) error

	// CreateMany inserts prospects, skipping profile URLs the campaign
	// already has. Returns how many were actually inserted.
	CreateMany(ctx context.Context, prospects []*entity.Prospect) (int, error)

	// CountByStatus returns the campaign's current status distribution.
	CountByStatus(ctx context.Context, campaignID string) (map[entity.ProspectStatus]int, error)
}

type OutreachRepositoryInterface interface {
	Append(ctx context.Context, record *entity.OutreachRecord) error

	// LastByProspect returns the most recent record by sent_at, or
	// (nil, nil) when the prospect has no outreach yet.
	LastByProspect(ctx context.Context, prospectID string) (*entity.OutreachRecord, error)

	// SetResponse fills the response field of an existing record.
	SetResponse(ctx context.Context, recordID, response string) error
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Campaign) error
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	List(ctx context.Context) ([]*entity.Campaign, error)
	ListActive(ctx context.Context) ([]*entity.Campaign, error)
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, t *entity.MessageTemplate) error
	FindByCampaign(ctx context.Context, campaignID string) (*entity.MessageTemplate, error)
}

type AnalyticsRepositoryInterface interface {
	Upsert(ctx context.Context, a *entity.CampaignAnalytics) error
	FindByCampaign(ctx context.Context, campaignID string) (*entity.CampaignAnalytics, error)
}

// Transport is the outbound collaborator that actually delivers to the
// social platform. The real integration is out of scope; the wired
// implementation simulates delivery.
type Transport interface {
	SendConnectionRequest(ctx context.Context, p *entity.Prospect, message string) error
	SendMessage(ctx context.Context, p *entity.Prospect, message string) error
}

type QueueProducerInterface interface {
	PublishOutreachSent(ctx context.Context, payload queue.OutreachSentPayload) error
}

type EmailService interface {
	SendRunSummary(to, campaignName string, sent, failed int) error
}
