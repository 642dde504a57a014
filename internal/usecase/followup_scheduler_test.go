package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/usecase"
)

type followUpFixture struct {
	prospects *MockProspectRepository
	outreach  *MockOutreachRepository
	campaigns *MockCampaignRepository
	templates *MockTemplateRepository
	analytics *MockAnalyticsRepository
	transport *MockTransport
	scheduler *usecase.FollowUpScheduler
}

func newFollowUpFixture() *followUpFixture {
	f := &followUpFixture{
		prospects: new(MockProspectRepository),
		outreach:  new(MockOutreachRepository),
		campaigns: new(MockCampaignRepository),
		templates: new(MockTemplateRepository),
		analytics: new(MockAnalyticsRepository),
		transport: new(MockTransport),
	}

	clock := usecase.FixedClock{Instant: testNow}
	aggregator := usecase.NewAnalyticsAggregator(f.prospects, f.analytics, clock)

	f.scheduler = usecase.NewFollowUpScheduler(
		f.campaigns, f.prospects, f.outreach, f.templates, aggregator,
		f.transport, nil, clock, usecase.NopPacer{},
	)

	return f
}

func fullTemplate(campaignID string) *entity.MessageTemplate {
	return &entity.MessageTemplate{
		ID:             "tpl-1",
		CampaignID:     campaignID,
		ConnectionMsg:  "Hi {firstName}",
		FollowUp1:      "Thanks for connecting, {firstName}!",
		FollowUp2:      "Following up, {firstName}",
		FollowUp3:      "One last try, {firstName}",
		FollowUp1Delay: 3,
		FollowUp2Delay: 7,
	}
}

func connectedProspect(id, campaignID string) *entity.Prospect {
	return &entity.Prospect{
		ID:         id,
		CampaignID: campaignID,
		FirstName:  "Ana",
		ProfileURL: "https://linkedin.com/in/" + id,
		Status:     entity.StatusConnected,
	}
}

func messagedProspect(id, campaignID string) *entity.Prospect {
	p := connectedProspect(id, campaignID)
	p.Status = entity.StatusMessageSent
	return p
}

func (f *followUpFixture) expectAnalyticsRecompute(campaignID string) {
	f.prospects.On("CountByStatus", mock.Anything, campaignID).Return(map[entity.ProspectStatus]int{
		entity.StatusMessageSent: 1,
	}, nil)
	f.analytics.On("Upsert", mock.Anything, mock.Anything).Return(nil)
}

func TestFirstMessageAdvancesProspect(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)
	f.expectAnalyticsRecompute("camp-1")

	p := connectedProspect("p-1", "camp-1")
	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{p}, nil)

	// Both follow-up scans run but find nobody in MESSAGE_SENT yet.
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{}, nil)

	f.transport.On("SendMessage", mock.Anything, p, "Thanks for connecting, Ana!").Return(nil)
	f.prospects.On("AdvanceStatus", mock.Anything, "p-1", entity.StatusConnected, entity.StatusMessageSent,
		mock.MatchedBy(func(ts usecase.ProspectTimestamps) bool {
			return ts.LastContactedAt != nil && ts.LastContactedAt.Equal(testNow)
		})).Return(nil)
	f.outreach.On("Append", mock.Anything, mock.MatchedBy(func(rec *entity.OutreachRecord) bool {
		return rec.Type == entity.OutreachFirstMessage && rec.ProspectID == "p-1"
	})).Return(nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 1, Skipped: 0}, result)
	f.prospects.AssertExpectations(t)
	f.outreach.AssertExpectations(t)
}

func TestFollowUp1InclusiveDelayBoundary(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)

	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	onTime := messagedProspect("p-exact", "camp-1")
	tooSoon := messagedProspect("p-soon", "camp-1")
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{onTime, tooSoon}, nil)

	// Sent exactly followUp1Delay days ago: eligible (boundary inclusive).
	f.outreach.On("LastByProspect", mock.Anything, "p-exact").Return(&entity.OutreachRecord{
		ID:         "rec-1",
		ProspectID: "p-exact",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow.AddDate(0, 0, -3),
	}, nil)

	// One second short of the threshold: not eligible.
	f.outreach.On("LastByProspect", mock.Anything, "p-soon").Return(&entity.OutreachRecord{
		ID:         "rec-2",
		ProspectID: "p-soon",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow.AddDate(0, 0, -3).Add(time.Second),
	}, nil)

	f.transport.On("SendMessage", mock.Anything, onTime, "Following up, Ana").Return(nil)
	f.prospects.On("TouchLastContacted", mock.Anything, "p-exact", testNow).Return(nil)
	f.outreach.On("Append", mock.Anything, mock.MatchedBy(func(rec *entity.OutreachRecord) bool {
		return rec.Type == entity.OutreachFollowUp1 && rec.ProspectID == "p-exact"
	})).Return(nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	f.transport.AssertNotCalled(t, "SendMessage", mock.Anything, tooSoon, mock.Anything)

	// Follow-ups never advance the funnel on their own.
	f.prospects.AssertNotCalled(t, "AdvanceStatus", mock.Anything, "p-exact", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUp1SkippedWhenBodyMissing(t *testing.T) {
	f := newFollowUpFixture()

	template := fullTemplate("camp-1")
	template.FollowUp2 = ""
	template.FollowUp3 = ""
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(template, nil)

	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 0, Skipped: 0}, result)

	// The stage is inactive: the MESSAGE_SENT pool is never even scanned.
	f.prospects.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordedResponseSuppressesFollowUp(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)

	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	p := messagedProspect("p-1", "camp-1")
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{p}, nil)

	f.outreach.On("LastByProspect", mock.Anything, "p-1").Return(&entity.OutreachRecord{
		ID:         "rec-1",
		ProspectID: "p-1",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow.AddDate(0, 0, -10),
		Response:   "Sounds interesting, tell me more",
	}, nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	f.transport.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestScansAreMutuallyExclusive(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)

	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	// The prospect's last outreach is FIRST_MESSAGE, old enough for both
	// delay thresholds. Only the follow-up 1 scan may claim it; follow-up 2
	// requires a FOLLOW_UP_1 record on top.
	p := messagedProspect("p-1", "camp-1")
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{p}, nil)
	f.outreach.On("LastByProspect", mock.Anything, "p-1").Return(&entity.OutreachRecord{
		ID:         "rec-1",
		ProspectID: "p-1",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow.AddDate(0, 0, -30),
	}, nil)

	f.transport.On("SendMessage", mock.Anything, p, mock.Anything).Return(nil)
	f.prospects.On("TouchLastContacted", mock.Anything, "p-1", testNow).Return(nil)
	f.outreach.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	f.transport.AssertNumberOfCalls(t, "SendMessage", 1)
	f.outreach.AssertNumberOfCalls(t, "Append", 1)
}

func TestNoDuplicateFirstMessageOnRepeatRun(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)

	// After the first run the prospect is MESSAGE_SENT with a FIRST_MESSAGE
	// record stamped just now, so it is out of scan 1 and not yet due for
	// scan 2.
	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	p := messagedProspect("p-1", "camp-1")
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{p}, nil)
	f.outreach.On("LastByProspect", mock.Anything, "p-1").Return(&entity.OutreachRecord{
		ID:         "rec-1",
		ProspectID: "p-1",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow,
	}, nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 0, Skipped: 0}, result)
	f.transport.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransportFailureCountsAsSkipped(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)
	f.expectAnalyticsRecompute("camp-1")

	bad := connectedProspect("p-bad", "camp-1")
	good := connectedProspect("p-good", "camp-1")
	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{bad, good}, nil)
	f.prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{}, nil)

	f.transport.On("SendMessage", mock.Anything, bad, mock.Anything).Return(errors.New("session expired"))
	f.transport.On("SendMessage", mock.Anything, good, mock.Anything).Return(nil)
	f.prospects.On("AdvanceStatus", mock.Anything, "p-good", entity.StatusConnected, entity.StatusMessageSent, mock.Anything).Return(nil)
	f.outreach.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 1, Skipped: 1}, result)
	f.prospects.AssertNotCalled(t, "AdvanceStatus", mock.Anything, "p-bad", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessFollowUpsIsolatesCampaignFailures(t *testing.T) {
	f := newFollowUpFixture()

	f.campaigns.On("ListActive", mock.Anything).Return([]*entity.Campaign{
		{ID: "camp-broken", Status: entity.CampaignActive},
		{ID: "camp-ok", Status: entity.CampaignActive},
	}, nil)

	// First campaign blows up loading its template; the second still runs.
	f.templates.On("FindByCampaign", mock.Anything, "camp-broken").
		Return(nil, errors.New("store unavailable"))
	f.templates.On("FindByCampaign", mock.Anything, "camp-ok").Return(fullTemplate("camp-ok"), nil)

	f.prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-ok").
		Return([]*entity.Prospect{}, nil)
	f.prospects.On("ListByStatus", mock.Anything, "camp-ok", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{}, nil)

	result, err := f.scheduler.ProcessFollowUps(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 0, Skipped: 0}, result)
	f.templates.AssertNumberOfCalls(t, "FindByCampaign", 2)
}

// memoryOutreachLog is a thread-safe in-memory outreach store. Unlike the
// mock it reflects appends immediately, which is what the overlap tests need:
// a later pass must see the records an earlier pass wrote.
type memoryOutreachLog struct {
	mu      sync.Mutex
	records map[string][]*entity.OutreachRecord
}

func newMemoryOutreachLog(seed ...*entity.OutreachRecord) *memoryOutreachLog {
	l := &memoryOutreachLog{records: make(map[string][]*entity.OutreachRecord)}
	for _, rec := range seed {
		l.records[rec.ProspectID] = append(l.records[rec.ProspectID], rec)
	}
	return l
}

func (l *memoryOutreachLog) Append(ctx context.Context, rec *entity.OutreachRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[rec.ProspectID] = append(l.records[rec.ProspectID], rec)
	return nil
}

func (l *memoryOutreachLog) LastByProspect(ctx context.Context, prospectID string) (*entity.OutreachRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs := l.records[prospectID]
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[len(recs)-1], nil
}

func (l *memoryOutreachLog) SetResponse(ctx context.Context, recordID, response string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, recs := range l.records {
		for _, rec := range recs {
			if rec.ID == recordID {
				rec.Response = response
				return nil
			}
		}
	}
	return errors.New("outreach record not found: " + recordID)
}

func (l *memoryOutreachLog) countByType(prospectID string, outreachType entity.OutreachType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, rec := range l.records[prospectID] {
		if rec.Type == outreachType {
			n++
		}
	}
	return n
}

func TestOverlappingFollowUpPassesSendOnce(t *testing.T) {
	prospects := new(MockProspectRepository)
	campaigns := new(MockCampaignRepository)
	templates := new(MockTemplateRepository)
	analytics := new(MockAnalyticsRepository)
	transport := new(MockTransport)

	outreach := newMemoryOutreachLog(&entity.OutreachRecord{
		ID:         "rec-1",
		ProspectID: "p-1",
		Type:       entity.OutreachFirstMessage,
		SentAt:     testNow.AddDate(0, 0, -10),
	})

	clock := usecase.FixedClock{Instant: testNow}
	aggregator := usecase.NewAnalyticsAggregator(prospects, analytics, clock)
	scheduler := usecase.NewFollowUpScheduler(
		campaigns, prospects, outreach, templates, aggregator,
		transport, nil, clock, usecase.NopPacer{},
	)

	templates.On("FindByCampaign", mock.Anything, "camp-1").Return(fullTemplate("camp-1"), nil)
	prospects.On("ListConnectedWithoutFirstMessage", mock.Anything, "camp-1").
		Return([]*entity.Prospect{}, nil)

	p := messagedProspect("p-1", "camp-1")
	prospects.On("ListByStatus", mock.Anything, "camp-1", entity.StatusMessageSent, 0).
		Return([]*entity.Prospect{p}, nil)
	prospects.On("TouchLastContacted", mock.Anything, "p-1", testNow).Return(nil)

	// A slow transport widens the window in which a second, unserialized
	// pass would pick up the same prospect.
	transport.On("SendMessage", mock.Anything, p, mock.Anything).Run(func(mock.Arguments) {
		time.Sleep(30 * time.Millisecond)
	}).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// The second pass sees the logged follow-up and skips the prospect.
	assert.Equal(t, 1, outreach.countByType("p-1", entity.OutreachFollowUp1))
	transport.AssertNumberOfCalls(t, "SendMessage", 1)
}

func TestMissingTemplateMeansNothingToDo(t *testing.T) {
	f := newFollowUpFixture()
	f.templates.On("FindByCampaign", mock.Anything, "camp-1").Return(nil, entity.ErrTemplateNotFound)

	result, err := f.scheduler.ProcessCampaignFollowUps(context.Background(), "camp-1")

	assert.NoError(t, err)
	assert.Equal(t, &usecase.FollowUpRunResult{Sent: 0, Skipped: 0}, result)
}
