package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/queue"
	"github.com/xavierca1/linkreach/internal/usecase"
)

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) CountSentSince(ctx context.Context, campaignID string, since time.Time) (int, error) {
	args := m.Called(ctx, campaignID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockProspectRepository) ListByStatus(ctx context.Context, campaignID string, status entity.ProspectStatus, limit int) ([]*entity.Prospect, error) {
	args := m.Called(ctx, campaignID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) ListConnectedWithoutFirstMessage(ctx context.Context, campaignID string) ([]*entity.Prospect, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) AdvanceStatus(ctx context.Context, id string, from, to entity.ProspectStatus, ts usecase.ProspectTimestamps) error {
	args := m.Called(ctx, id, from, to, ts)
	return args.Error(0)
}

func (m *MockProspectRepository) TouchLastContacted(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockProspectRepository) CreateMany(ctx context.Context, prospects []*entity.Prospect) (int, error) {
	args := m.Called(ctx, prospects)
	return args.Int(0), args.Error(1)
}

func (m *MockProspectRepository) CountByStatus(ctx context.Context, campaignID string) (map[entity.ProspectStatus]int, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.ProspectStatus]int), args.Error(1)
}

// MockOutreachRepository
type MockOutreachRepository struct {
	mock.Mock
}

func (m *MockOutreachRepository) Append(ctx context.Context, record *entity.OutreachRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOutreachRepository) LastByProspect(ctx context.Context, prospectID string) (*entity.OutreachRecord, error) {
	args := m.Called(ctx, prospectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OutreachRecord), args.Error(1)
}

func (m *MockOutreachRepository) SetResponse(ctx context.Context, recordID, response string) error {
	args := m.Called(ctx, recordID, response)
	return args.Error(0)
}

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListActive(ctx context.Context) ([]*entity.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

// MockTemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *entity.MessageTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindByCampaign(ctx context.Context, campaignID string) (*entity.MessageTemplate, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MessageTemplate), args.Error(1)
}

// MockAnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Upsert(ctx context.Context, a *entity.CampaignAnalytics) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) FindByCampaign(ctx context.Context, campaignID string) (*entity.CampaignAnalytics, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CampaignAnalytics), args.Error(1)
}

// MockTransport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendConnectionRequest(ctx context.Context, p *entity.Prospect, message string) error {
	args := m.Called(ctx, p, message)
	return args.Error(0)
}

func (m *MockTransport) SendMessage(ctx context.Context, p *entity.Prospect, message string) error {
	args := m.Called(ctx, p, message)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishOutreachSent(ctx context.Context, payload queue.OutreachSentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRunSummary(to, campaignName string, sent, failed int) error {
	args := m.Called(to, campaignName, sent, failed)
	return args.Error(0)
}
