package interview

import (
	"context"

	"github.com/casedesk/casedesk/pkg/kernel"
)

// SummaryRepository persists meeting summaries per case.
type SummaryRepository interface {
	SaveSummary(ctx context.Context, record SummaryRecord) (*SummaryRecord, error)
	// ListSummaries returns a case's summaries, newest first.
	ListSummaries(ctx context.Context, caseID kernel.CaseID) ([]SummaryRecord, error)
}
