package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignStatus string

const (
	CampaignDraft    CampaignStatus = "DRAFT"
	CampaignActive   CampaignStatus = "ACTIVE"
	CampaignPaused   CampaignStatus = "PAUSED"
	CampaignFinished CampaignStatus = "FINISHED"
)

type Campaign struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	TargetIndustry string         `json:"target_industry,omitempty"`
	Status         CampaignStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewCampaign(name, description, targetIndustry string) (*Campaign, error) {
	if name == "" {
		return nil, errors.New("campaign name is required")
	}

	return &Campaign{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    description,
		TargetIndustry: targetIndustry,
		Status:         CampaignActive,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}, nil
}
