package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/linkreach/internal/entity"
)

type OutreachRepository struct {
	DB *sql.DB
}

func NewOutreachRepository(db *sql.DB) *OutreachRepository {
	return &OutreachRepository{DB: db}
}

func (r *OutreachRepository) Append(ctx context.Context, record *entity.OutreachRecord) error {
	query := `
		INSERT INTO outreach_records (id, prospect_id, type, message, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.ProspectID,
		string(record.Type),
		record.Message,
		record.SentAt,
	)
	return err
}

func (r *OutreachRepository) LastByProspect(ctx context.Context, prospectID string) (*entity.OutreachRecord, error) {
	query := `
		SELECT id, prospect_id, type, message, response, sent_at
		FROM outreach_records
		WHERE prospect_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`

	var rec entity.OutreachRecord
	var recordType string
	var response sql.NullString

	err := r.DB.QueryRowContext(ctx, query, prospectID).Scan(
		&rec.ID,
		&rec.ProspectID,
		&recordType,
		&rec.Message,
		&response,
		&rec.SentAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Type = entity.OutreachType(recordType)
	rec.Response = response.String
	return &rec, nil
}

// SetResponse is the one permitted mutation of an outreach record.
func (r *OutreachRepository) SetResponse(ctx context.Context, recordID, response string) error {
	query := `UPDATE outreach_records SET response = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(ctx, query, response, recordID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("outreach record not found: " + recordID)
	}

	return nil
}
