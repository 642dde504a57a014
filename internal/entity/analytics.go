package entity

import (
	"errors"
	"time"
)

var ErrAnalyticsNotFound = errors.New("campaign analytics not found")

// CampaignAnalytics is derived data only: a pure function of the campaign's
// current prospect status distribution. It is always recomputed from scratch,
// never patched incrementally, so it cannot drift from the store.
type CampaignAnalytics struct {
	CampaignID string `json:"campaign_id"`

	TotalProspects      int `json:"total_prospects"`
	ConnectionsSent     int `json:"connections_sent"`
	ConnectionsAccepted int `json:"connections_accepted"`
	RepliesReceived     int `json:"replies_received"`
	Conversions         int `json:"conversions"`

	ConnectionRate float64 `json:"connection_rate"`
	ResponseRate   float64 `json:"response_rate"`
	ConversionRate float64 `json:"conversion_rate"`

	UpdatedAt time.Time `json:"updated_at"`
}
