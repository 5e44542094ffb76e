package casefileinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casedesk/casedesk/pkg/casefile"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresCaseRepository is the PostgreSQL implementation of
// casefile.CaseRepository.
type PostgresCaseRepository struct {
	db *sqlx.DB
}

// NewPostgresCaseRepository creates a new repository instance.
func NewPostgresCaseRepository(db *sqlx.DB) casefile.CaseRepository {
	return &PostgresCaseRepository{db: db}
}

// Create inserts a new case and returns it with its assigned ID.
func (r *PostgresCaseRepository) Create(ctx context.Context, c casefile.Case) (*casefile.Case, error) {
	query := `
		INSERT INTO cases (
			company_name, branch_number, cif_name, case_type, fa_name, staff_name,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING *`

	var created casefile.Case
	err := r.db.GetContext(ctx, &created, query,
		c.CompanyName, c.BranchNumber, c.CIFName, c.CaseType, c.FAName, c.StaffName)
	if err != nil {
		return nil, errx.Wrap(err, "failed to create case", errx.TypeInternal).
			WithDetail("company_name", c.CompanyName)
	}
	return &created, nil
}

// Update overwrites the intake fields of an existing case.
func (r *PostgresCaseRepository) Update(ctx context.Context, c casefile.Case) (*casefile.Case, error) {
	query := `
		UPDATE cases SET
			company_name = $1,
			branch_number = $2,
			cif_name = $3,
			case_type = $4,
			fa_name = $5,
			staff_name = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING *`

	var updated casefile.Case
	err := r.db.GetContext(ctx, &updated, query,
		c.CompanyName, c.BranchNumber, c.CIFName, c.CaseType, c.FAName, c.StaffName,
		c.ID.Int64())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, casefile.ErrCaseNotFound().WithDetail("id", c.ID.Int64())
		}
		return nil, errx.Wrap(err, "failed to update case", errx.TypeInternal).
			WithDetail("id", c.ID.Int64())
	}
	return &updated, nil
}

// FindByID returns one case by ID.
func (r *PostgresCaseRepository) FindByID(ctx context.Context, id kernel.CaseID) (*casefile.Case, error) {
	var c casefile.Case
	err := r.db.GetContext(ctx, &c, `SELECT * FROM cases WHERE id = $1`, id.Int64())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, casefile.ErrCaseNotFound().WithDetail("id", id.Int64())
		}
		return nil, errx.Wrap(err, "failed to find case", errx.TypeInternal).
			WithDetail("id", id.Int64())
	}
	return &c, nil
}

// List returns one page of cases matching the filter, most recently updated
// first. Non-empty filter fields match by substring.
func (r *PostgresCaseRepository) List(ctx context.Context, filter casefile.Filter, page kernel.PaginationOptions) ([]casefile.Case, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", column, len(args))
	}
	addLike("company_name", filter.CompanyName)
	addLike("cif_name", filter.CIFName)
	addLike("case_type", filter.CaseType)
	addLike("fa_name", filter.FAName)
	addLike("staff_name", filter.StaffName)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cases`+where, args...); err != nil {
		return nil, 0, errx.Wrap(err, "failed to count matching cases", errx.TypeInternal)
	}

	query := `SELECT * FROM cases` + where + ` ORDER BY updated_at DESC`
	if page.PageSize > 0 {
		args = append(args, page.PageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if page.Page > 1 {
			args = append(args, (page.Page-1)*page.PageSize)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	cases := []casefile.Case{}
	if err := r.db.SelectContext(ctx, &cases, query, args...); err != nil {
		return nil, 0, errx.Wrap(err, "failed to list cases", errx.TypeInternal)
	}
	return cases, total, nil
}

// Delete removes a case.
func (r *PostgresCaseRepository) Delete(ctx context.Context, id kernel.CaseID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id.Int64())
	if err != nil {
		return errx.Wrap(err, "failed to delete case", errx.TypeInternal).
			WithDetail("id", id.Int64())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return casefile.ErrCaseNotFound().WithDetail("id", id.Int64())
	}
	return nil
}

// Count returns the total number of cases.
func (r *PostgresCaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM cases`); err != nil {
		return 0, errx.Wrap(err, "failed to count cases", errx.TypeInternal)
	}
	return count, nil
}

// LatestUpdatedAt returns the most recent updated_at across all cases.
func (r *PostgresCaseRepository) LatestUpdatedAt(ctx context.Context) (time.Time, error) {
	var latest sql.NullTime
	err := r.db.GetContext(ctx, &latest, `SELECT MAX(updated_at) FROM cases`)
	if err != nil {
		return time.Time{}, errx.Wrap(err, "failed to read latest case update", errx.TypeInternal)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return latest.Time, nil
}
