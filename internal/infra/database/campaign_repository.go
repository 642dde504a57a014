package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, name, description, target_industry, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Description),
		nullString(c.TargetIndustry),
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, name, description, target_industry, status, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCampaignNotFound
	}
	return c, err
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	return r.list(ctx, `
		SELECT id, name, description, target_industry, status, created_at, updated_at
		FROM campaigns
		ORDER BY created_at DESC
	`)
}

func (r *CampaignRepository) ListActive(ctx context.Context) ([]*entity.Campaign, error) {
	return r.list(ctx, `
		SELECT id, name, description, target_industry, status, created_at, updated_at
		FROM campaigns
		WHERE status = 'ACTIVE'
		ORDER BY created_at DESC
	`)
}

func (r *CampaignRepository) list(ctx context.Context, query string) ([]*entity.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func scanCampaign(row rowScanner) (*entity.Campaign, error) {
	var c entity.Campaign
	var description, targetIndustry sql.NullString
	var status string

	err := row.Scan(
		&c.ID,
		&c.Name,
		&description,
		&targetIndustry,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Description = description.String
	c.TargetIndustry = targetIndustry.String
	c.Status = entity.CampaignStatus(status)
	return &c, nil
}
