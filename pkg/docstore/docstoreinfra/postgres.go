package docstoreinfra

import (
	"context"
	"database/sql"

	"github.com/casedesk/casedesk/pkg/docstore"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRecordRepository is the PostgreSQL implementation of
// docstore.RecordRepository.
type PostgresRecordRepository struct {
	db *sqlx.DB
}

// NewPostgresRecordRepository creates a new repository instance.
func NewPostgresRecordRepository(db *sqlx.DB) docstore.RecordRepository {
	return &PostgresRecordRepository{db: db}
}

// Create inserts a new OCR record and returns it with its assigned ID.
func (r *PostgresRecordRepository) Create(ctx context.Context, record docstore.Record) (*docstore.Record, error) {
	query := `
		INSERT INTO ocr_records (filename, want_to_read, label, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, filename, want_to_read, label, result, created_at, updated_at`

	var created docstore.Record
	err := r.db.GetContext(ctx, &created, query, record.Filename, record.WantToRead, record.Label)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return nil, docstore.ErrInvalidRecord().WithDetail("reason", "filename already registered")
		}
		return nil, errx.Wrap(err, "failed to create OCR record", errx.TypeInternal).
			WithDetail("filename", record.Filename)
	}
	return &created, nil
}

// FindByID returns one record by ID.
func (r *PostgresRecordRepository) FindByID(ctx context.Context, id kernel.RecordID) (*docstore.Record, error) {
	var record docstore.Record
	query := `SELECT * FROM ocr_records WHERE id = $1`
	err := r.db.GetContext(ctx, &record, query, id.Int64())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, docstore.ErrRecordNotFound().WithDetail("id", id.Int64())
		}
		return nil, errx.Wrap(err, "failed to find OCR record", errx.TypeInternal).
			WithDetail("id", id.Int64())
	}
	return &record, nil
}

// List returns records matching the filter, newest first.
func (r *PostgresRecordRepository) List(ctx context.Context, filter docstore.Filter) ([]docstore.Record, error) {
	query := `SELECT * FROM ocr_records WHERE 1=1`
	args := []any{}

	if filter.Label != "" {
		args = append(args, filter.Label)
		query += ` AND label = $1`
	}
	if filter.PendingOnly {
		query += ` AND (result IS NULL OR result = '')`
	}
	query += ` ORDER BY created_at DESC`

	records := []docstore.Record{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list OCR records", errx.TypeInternal)
	}
	return records, nil
}

// ListPending returns records without a result, optionally narrowed by label.
func (r *PostgresRecordRepository) ListPending(ctx context.Context, label string) ([]docstore.Record, error) {
	return r.List(ctx, docstore.Filter{Label: label, PendingOnly: true})
}

// WriteResult overwrites the result column. Last write wins.
func (r *PostgresRecordRepository) WriteResult(ctx context.Context, id kernel.RecordID, text string) error {
	query := `UPDATE ocr_records SET result = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, text, id.Int64())
	if err != nil {
		return errx.Wrap(err, "failed to write OCR result", errx.TypeInternal).
			WithDetail("id", id.Int64())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on result write", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return docstore.ErrRecordNotFound().WithDetail("id", id.Int64())
	}
	return nil
}

// Delete removes a record.
func (r *PostgresRecordRepository) Delete(ctx context.Context, id kernel.RecordID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ocr_records WHERE id = $1`, id.Int64())
	if err != nil {
		return errx.Wrap(err, "failed to delete OCR record", errx.TypeInternal).
			WithDetail("id", id.Int64())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return docstore.ErrRecordNotFound().WithDetail("id", id.Int64())
	}
	return nil
}

// Count returns the number of registered records.
func (r *PostgresRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM ocr_records`); err != nil {
		return 0, errx.Wrap(err, "failed to count OCR records", errx.TypeInternal)
	}
	return count, nil
}
