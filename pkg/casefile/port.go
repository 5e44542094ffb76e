package casefile

import (
	"context"
	"time"

	"github.com/casedesk/casedesk/pkg/kernel"
)

// CaseRepository is the persistence port for client cases.
type CaseRepository interface {
	Create(ctx context.Context, c Case) (*Case, error)
	Update(ctx context.Context, c Case) (*Case, error)
	FindByID(ctx context.Context, id kernel.CaseID) (*Case, error)
	// List returns one page of cases matching the filter, most recently
	// updated first, plus the total number of matches.
	List(ctx context.Context, filter Filter, page kernel.PaginationOptions) ([]Case, int, error)
	Delete(ctx context.Context, id kernel.CaseID) error
	Count(ctx context.Context) (int64, error)
	// LatestUpdatedAt returns the updated_at of the most recently touched
	// case, or the zero time when no cases exist.
	LatestUpdatedAt(ctx context.Context) (time.Time, error)
}
