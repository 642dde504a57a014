package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (
			id, campaign_id, industry, connection_msg,
			follow_up_1, follow_up_2, follow_up_3,
			follow_up_1_delay, follow_up_2_delay, follow_up_3_delay
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.CampaignID,
		nullString(t.Industry),
		t.ConnectionMsg,
		t.FollowUp1,
		nullString(t.FollowUp2),
		nullString(t.FollowUp3),
		t.FollowUp1Delay,
		t.FollowUp2Delay,
		t.FollowUp3Delay,
	)
	return err
}

func (r *TemplateRepository) FindByCampaign(ctx context.Context, campaignID string) (*entity.MessageTemplate, error) {
	query := `
		SELECT id, campaign_id, industry, connection_msg,
			follow_up_1, follow_up_2, follow_up_3,
			follow_up_1_delay, follow_up_2_delay, follow_up_3_delay
		FROM message_templates
		WHERE campaign_id = $1
	`

	var t entity.MessageTemplate
	var industry, followUp2, followUp3 sql.NullString

	err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(
		&t.ID,
		&t.CampaignID,
		&industry,
		&t.ConnectionMsg,
		&t.FollowUp1,
		&followUp2,
		&followUp3,
		&t.FollowUp1Delay,
		&t.FollowUp2Delay,
		&t.FollowUp3Delay,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Industry = industry.String
	t.FollowUp2 = followUp2.String
	t.FollowUp3 = followUp3.String
	return &t, nil
}
