package entity

import (
	"time"

	"github.com/google/uuid"
)

type OutreachType string

const (
	OutreachConnectionRequest OutreachType = "CONNECTION_REQUEST"
	OutreachFirstMessage      OutreachType = "FIRST_MESSAGE"
	OutreachFollowUp1         OutreachType = "FOLLOW_UP_1"
	OutreachFollowUp2         OutreachType = "FOLLOW_UP_2"
)

// OutreachRecord is one append-only log entry per sent message. Immutable
// once written, except for Response which the reply consumer fills in later.
type OutreachRecord struct {
	ID         string       `json:"id"`
	ProspectID string       `json:"prospect_id"`
	Type       OutreachType `json:"type"`
	Message    string       `json:"message"`
	Response   string       `json:"response,omitempty"`
	SentAt     time.Time    `json:"sent_at"`
}

func NewOutreachRecord(prospectID string, outreachType OutreachType, message string, sentAt time.Time) *OutreachRecord {
	return &OutreachRecord{
		ID:         uuid.New().String(),
		ProspectID: prospectID,
		Type:       outreachType,
		Message:    message,
		SentAt:     sentAt,
	}
}
