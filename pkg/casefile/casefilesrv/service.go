package casefilesrv

import (
	"context"
	"time"

	"github.com/casedesk/casedesk/pkg/casefile"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/logx"
)

// Service owns case intake CRUD.
type Service struct {
	cases casefile.CaseRepository
}

// NewService creates the case service.
func NewService(cases casefile.CaseRepository) *Service {
	return &Service{cases: cases}
}

// Create validates and registers a new case.
func (s *Service) Create(ctx context.Context, c casefile.Case) (*casefile.Case, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := s.cases.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	logx.Infof("case registered: %s / %s (id=%d)", created.CompanyName, created.CIFName, created.ID.Int64())
	return created, nil
}

// Update validates and overwrites an existing case.
func (s *Service) Update(ctx context.Context, id kernel.CaseID, c casefile.Case) (*casefile.Case, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = id
	return s.cases.Update(ctx, c)
}

// Get returns one case.
func (s *Service) Get(ctx context.Context, id kernel.CaseID) (*casefile.Case, error) {
	return s.cases.FindByID(ctx, id)
}

// List returns one page of cases matching the filter, most recently
// updated first.
func (s *Service) List(ctx context.Context, filter casefile.Filter, page kernel.PaginationOptions) (kernel.Paginated[casefile.Case], error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = 20
	}

	cases, total, err := s.cases.List(ctx, filter, page)
	if err != nil {
		return kernel.Paginated[casefile.Case]{}, err
	}
	return kernel.NewPaginated(cases, page.Page, page.PageSize, total), nil
}

// Delete removes a case.
func (s *Service) Delete(ctx context.Context, id kernel.CaseID) error {
	return s.cases.Delete(ctx, id)
}

// Count returns the number of registered cases.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.cases.Count(ctx)
}

// LatestUpdatedAt returns the most recent case update time. The zero time
// means no cases exist yet.
func (s *Service) LatestUpdatedAt(ctx context.Context) (time.Time, error) {
	return s.cases.LatestUpdatedAt(ctx)
}
