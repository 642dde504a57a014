package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/usecase"
)

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

const prospectColumns = `
	id, campaign_id, first_name, last_name, company, industry, profile_url,
	status, connection_sent_at, last_contacted_at, created_at, updated_at`

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = $1`

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProspectNotFound
	}
	return p, err
}

func (r *ProspectRepository) CountSentSince(ctx context.Context, campaignID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM prospects
		WHERE campaign_id = $1 AND connection_sent_at >= $2
	`

	var count int
	err := r.DB.QueryRowContext(ctx, query, campaignID, since).Scan(&count)
	return count, err
}

func (r *ProspectRepository) ListByStatus(ctx context.Context, campaignID string, status entity.ProspectStatus, limit int) ([]*entity.Prospect, error) {
	// Creation order with the id as tiebreak keeps batches deterministic.
	query := `
		SELECT ` + prospectColumns + `
		FROM prospects
		WHERE campaign_id = $1 AND status = $2
		ORDER BY created_at, id
	`
	args := []interface{}{campaignID, string(status)}

	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProspects(rows)
}

func (r *ProspectRepository) ListConnectedWithoutFirstMessage(ctx context.Context, campaignID string) ([]*entity.Prospect, error) {
	query := `
		SELECT ` + prospectColumns + `
		FROM prospects p
		WHERE p.campaign_id = $1
		  AND p.status = $2
		  AND NOT EXISTS (
			SELECT 1 FROM outreach_records o
			WHERE o.prospect_id = p.id AND o.type = $3
		  )
		ORDER BY p.created_at, p.id
	`

	rows, err := r.DB.QueryContext(ctx, query,
		campaignID,
		string(entity.StatusConnected),
		string(entity.OutreachFirstMessage),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProspects(rows)
}

// AdvanceStatus is conditional on the current status, which makes the claim
// atomic: of two concurrent batches only one sees a row updated.
func (r *ProspectRepository) AdvanceStatus(ctx context.Context, id string, from, to entity.ProspectStatus, ts usecase.ProspectTimestamps) error {
	query := `
		UPDATE prospects
		SET status = $1,
			connection_sent_at = COALESCE($2, connection_sent_at),
			last_contacted_at = COALESCE($3, last_contacted_at),
			updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	result, err := r.DB.ExecContext(ctx, query,
		string(to),
		nullTime(ts.ConnectionSentAt),
		nullTime(ts.LastContactedAt),
		id,
		string(from),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrProspectNotFound
	}

	return nil
}

func (r *ProspectRepository) TouchLastContacted(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE prospects
		SET last_contacted_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrProspectNotFound
	}

	return nil
}

func (r *ProspectRepository) CreateMany(ctx context.Context, prospects []*entity.Prospect) (int, error) {
	query := `
		INSERT INTO prospects (
			id, campaign_id, first_name, last_name, company, industry,
			profile_url, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (campaign_id, profile_url) DO NOTHING
	`

	inserted := 0
	for _, p := range prospects {
		result, err := r.DB.ExecContext(ctx, query,
			p.ID,
			p.CampaignID,
			p.FirstName,
			nullString(p.LastName),
			nullString(p.Company),
			nullString(p.Industry),
			p.ProfileURL,
			string(p.Status),
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			var pgErr *pq.Error
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return inserted, entity.ErrCampaignNotFound
			}
			return inserted, err
		}

		if n, err := result.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}

	return inserted, nil
}

func (r *ProspectRepository) CountByStatus(ctx context.Context, campaignID string) (map[entity.ProspectStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM prospects
		WHERE campaign_id = $1
		GROUP BY status
	`

	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entity.ProspectStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[entity.ProspectStatus(status)] = n
	}

	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProspect(row rowScanner) (*entity.Prospect, error) {
	var p entity.Prospect
	var lastName, company, industry sql.NullString
	var connectionSentAt, lastContactedAt sql.NullTime
	var status string

	err := row.Scan(
		&p.ID,
		&p.CampaignID,
		&p.FirstName,
		&lastName,
		&company,
		&industry,
		&p.ProfileURL,
		&status,
		&connectionSentAt,
		&lastContactedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.LastName = lastName.String
	p.Company = company.String
	p.Industry = industry.String
	p.Status = entity.ProspectStatus(status)
	if connectionSentAt.Valid {
		p.ConnectionSentAt = &connectionSentAt.Time
	}
	if lastContactedAt.Valid {
		p.LastContactedAt = &lastContactedAt.Time
	}

	return &p, nil
}

func collectProspects(rows *sql.Rows) ([]*entity.Prospect, error) {
	var prospects []*entity.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
