package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProspectNotFound = errors.New("prospect not found")

// ProspectStatus is the outreach funnel. A prospect only ever moves forward
// through it, never backwards.
type ProspectStatus string

const (
	StatusPending        ProspectStatus = "PENDING"
	StatusConnectionSent ProspectStatus = "CONNECTION_SENT"
	StatusConnected      ProspectStatus = "CONNECTED"
	StatusMessageSent    ProspectStatus = "MESSAGE_SENT"
	StatusReplied        ProspectStatus = "REPLIED"
	StatusConverted      ProspectStatus = "CONVERTED"
)

var funnelOrder = map[ProspectStatus]int{
	StatusPending:        0,
	StatusConnectionSent: 1,
	StatusConnected:      2,
	StatusMessageSent:    3,
	StatusReplied:        4,
	StatusConverted:      5,
}

// Rank returns the position of the status in the funnel, or -1 for an
// unknown value.
func (s ProspectStatus) Rank() int {
	rank, ok := funnelOrder[s]
	if !ok {
		return -1
	}
	return rank
}

func (s ProspectStatus) Valid() bool {
	_, ok := funnelOrder[s]
	return ok
}

// CanAdvanceTo enforces the forward-only invariant.
func (s ProspectStatus) CanAdvanceTo(next ProspectStatus) bool {
	return next.Valid() && next.Rank() > s.Rank()
}

type Prospect struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Company    string `json:"company,omitempty"`
	Industry   string `json:"industry,omitempty"`
	ProfileURL string `json:"profile_url"`

	Status           ProspectStatus `json:"status"`
	ConnectionSentAt *time.Time     `json:"connection_sent_at,omitempty"`
	LastContactedAt  *time.Time     `json:"last_contacted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProspect(campaignID, firstName, company, industry, profileURL string) (*Prospect, error) {
	p := &Prospect{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		FirstName:  firstName,
		Company:    company,
		Industry:   industry,
		ProfileURL: profileURL,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Prospect) Validate() error {
	if p.CampaignID == "" {
		return errors.New("campaign id is required")
	}
	if p.FirstName == "" {
		return errors.New("first name is required")
	}
	if p.ProfileURL == "" {
		return errors.New("profile url is required")
	}
	return nil
}
