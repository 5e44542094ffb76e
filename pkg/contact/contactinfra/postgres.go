package contactinfra

import (
	"context"
	"database/sql"

	"github.com/casedesk/casedesk/pkg/contact"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/jmoiron/sqlx"
)

// PostgresInquiryRepository is the PostgreSQL implementation of
// contact.InquiryRepository.
type PostgresInquiryRepository struct {
	db *sqlx.DB
}

// NewPostgresInquiryRepository creates a new repository instance.
func NewPostgresInquiryRepository(db *sqlx.DB) contact.InquiryRepository {
	return &PostgresInquiryRepository{db: db}
}

// Create inserts a new inquiry and returns it with its assigned ID.
func (r *PostgresInquiryRepository) Create(ctx context.Context, inquiry contact.Inquiry) (*contact.Inquiry, error) {
	query := `
		INSERT INTO inquiries (name, email, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING *`

	var created contact.Inquiry
	err := r.db.GetContext(ctx, &created, query, inquiry.Name, inquiry.Email, inquiry.Message)
	if err != nil {
		return nil, errx.Wrap(err, "failed to create inquiry", errx.TypeInternal).
			WithDetail("email", inquiry.Email)
	}
	return &created, nil
}

// FindByID returns one inquiry by ID.
func (r *PostgresInquiryRepository) FindByID(ctx context.Context, id int64) (*contact.Inquiry, error) {
	var inquiry contact.Inquiry
	err := r.db.GetContext(ctx, &inquiry, `SELECT * FROM inquiries WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrInquiryNotFound().WithDetail("id", id)
		}
		return nil, errx.Wrap(err, "failed to find inquiry", errx.TypeInternal).
			WithDetail("id", id)
	}
	return &inquiry, nil
}

// List returns all inquiries, newest first.
func (r *PostgresInquiryRepository) List(ctx context.Context) ([]contact.Inquiry, error) {
	inquiries := []contact.Inquiry{}
	query := `SELECT * FROM inquiries ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, errx.Wrap(err, "failed to list inquiries", errx.TypeInternal)
	}
	return inquiries, nil
}
