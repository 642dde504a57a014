package entity

import "errors"

var ErrTemplateNotFound = errors.New("message template not found")

// MessageTemplate holds the connection note and up to three follow-up bodies
// for a campaign. Delays are in days, counted from the previous outreach.
type MessageTemplate struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Industry   string `json:"industry,omitempty"`

	ConnectionMsg string `json:"connection_msg"`
	FollowUp1     string `json:"follow_up_1"`
	FollowUp2     string `json:"follow_up_2,omitempty"`
	FollowUp3     string `json:"follow_up_3,omitempty"`

	FollowUp1Delay int `json:"follow_up_1_delay"`
	FollowUp2Delay int `json:"follow_up_2_delay"`
	FollowUp3Delay int `json:"follow_up_3_delay"`
}

// HasFollowUp1Stage reports whether the follow-up 1 scan is configured: it
// needs its own body and the delay since the first message.
func (t *MessageTemplate) HasFollowUp1Stage() bool {
	return t.FollowUp2 != "" && t.FollowUp1Delay > 0
}

// HasFollowUp2Stage reports whether the follow-up 2 scan is configured. The
// gate cascades: a later follow-up needs its own body and the prior stage's
// delay.
func (t *MessageTemplate) HasFollowUp2Stage() bool {
	return t.FollowUp3 != "" && t.FollowUp2Delay > 0
}
