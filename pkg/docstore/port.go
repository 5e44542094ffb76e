package docstore

import (
	"context"

	"github.com/casedesk/casedesk/pkg/kernel"
)

// RecordRepository is the persistence port for OCR records.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (*Record, error)
	FindByID(ctx context.Context, id kernel.RecordID) (*Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	// ListPending returns records that have no result yet, optionally
	// narrowed by label.
	ListPending(ctx context.Context, label string) ([]Record, error)
	// WriteResult overwrites the result column. Last write wins; there is
	// no concurrency token.
	WriteResult(ctx context.Context, id kernel.RecordID, text string) error
	Delete(ctx context.Context, id kernel.RecordID) error
	Count(ctx context.Context) (int64, error)
}
