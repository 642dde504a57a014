package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

type AnalyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// Upsert overwrites the whole row; analytics are recomputed, never patched.
func (r *AnalyticsRepository) Upsert(ctx context.Context, a *entity.CampaignAnalytics) error {
	query := `
		INSERT INTO campaign_analytics (
			campaign_id, total_prospects, connections_sent, connections_accepted,
			replies_received, conversions, connection_rate, response_rate,
			conversion_rate, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (campaign_id)
		DO UPDATE SET
			total_prospects = EXCLUDED.total_prospects,
			connections_sent = EXCLUDED.connections_sent,
			connections_accepted = EXCLUDED.connections_accepted,
			replies_received = EXCLUDED.replies_received,
			conversions = EXCLUDED.conversions,
			connection_rate = EXCLUDED.connection_rate,
			response_rate = EXCLUDED.response_rate,
			conversion_rate = EXCLUDED.conversion_rate,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.CampaignID,
		a.TotalProspects,
		a.ConnectionsSent,
		a.ConnectionsAccepted,
		a.RepliesReceived,
		a.Conversions,
		a.ConnectionRate,
		a.ResponseRate,
		a.ConversionRate,
		a.UpdatedAt,
	)
	return err
}

func (r *AnalyticsRepository) FindByCampaign(ctx context.Context, campaignID string) (*entity.CampaignAnalytics, error) {
	query := `
		SELECT campaign_id, total_prospects, connections_sent, connections_accepted,
			replies_received, conversions, connection_rate, response_rate,
			conversion_rate, updated_at
		FROM campaign_analytics
		WHERE campaign_id = $1
	`

	var a entity.CampaignAnalytics
	err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(
		&a.CampaignID,
		&a.TotalProspects,
		&a.ConnectionsSent,
		&a.ConnectionsAccepted,
		&a.RepliesReceived,
		&a.Conversions,
		&a.ConnectionRate,
		&a.ResponseRate,
		&a.ConversionRate,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrAnalyticsNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}
