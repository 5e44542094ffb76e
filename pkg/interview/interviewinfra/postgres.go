package interviewinfra

import (
	"context"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/interview"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresSummaryRepository is the PostgreSQL implementation of
// interview.SummaryRepository.
type PostgresSummaryRepository struct {
	db *sqlx.DB
}

// NewPostgresSummaryRepository creates a new repository instance.
func NewPostgresSummaryRepository(db *sqlx.DB) interview.SummaryRepository {
	return &PostgresSummaryRepository{db: db}
}

// SaveSummary inserts a new summary for a case.
func (r *PostgresSummaryRepository) SaveSummary(ctx context.Context, record interview.SummaryRecord) (*interview.SummaryRecord, error) {
	query := `
		INSERT INTO interview_summaries (case_id, formatted_text, summary, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING *`

	var saved interview.SummaryRecord
	err := r.db.GetContext(ctx, &saved, query,
		record.CaseID.Int64(), record.FormattedText, record.Summary)
	if err != nil {
		return nil, errx.Wrap(err, "failed to save interview summary", errx.TypeInternal).
			WithDetail("case_id", record.CaseID.Int64())
	}
	return &saved, nil
}

// ListSummaries returns a case's summaries, newest first.
func (r *PostgresSummaryRepository) ListSummaries(ctx context.Context, caseID kernel.CaseID) ([]interview.SummaryRecord, error) {
	records := []interview.SummaryRecord{}
	query := `SELECT * FROM interview_summaries WHERE case_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &records, query, caseID.Int64()); err != nil {
		return nil, errx.Wrap(err, "failed to list interview summaries", errx.TypeInternal).
			WithDetail("case_id", caseID.Int64())
	}
	return records, nil
}
