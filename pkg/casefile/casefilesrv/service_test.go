package casefilesrv_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/casedesk/casedesk/pkg/casefile"
	"github.com/casedesk/casedesk/pkg/casefile/casefilesrv"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
)

// fakeCaseRepo is an in-memory CaseRepository.
type fakeCaseRepo struct {
	nextID int64
	cases  map[kernel.CaseID]casefile.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{nextID: 1, cases: make(map[kernel.CaseID]casefile.Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c casefile.Case) (*casefile.Case, error) {
	c.ID = kernel.NewCaseID(r.nextID)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.nextID++
	r.cases[c.ID] = c
	return &c, nil
}

func (r *fakeCaseRepo) Update(_ context.Context, c casefile.Case) (*casefile.Case, error) {
	if _, ok := r.cases[c.ID]; !ok {
		return nil, casefile.ErrCaseNotFound()
	}
	c.UpdatedAt = time.Now()
	r.cases[c.ID] = c
	return &c, nil
}

func (r *fakeCaseRepo) FindByID(_ context.Context, id kernel.CaseID) (*casefile.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, casefile.ErrCaseNotFound()
	}
	return &c, nil
}

func (r *fakeCaseRepo) List(_ context.Context, filter casefile.Filter, page kernel.PaginationOptions) ([]casefile.Case, int, error) {
	matched := []casefile.Case{}
	for _, c := range r.cases {
		if filter.CompanyName != "" && !strings.Contains(c.CompanyName, filter.CompanyName) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Int64() < matched[j].ID.Int64()
	})

	total := len(matched)
	if page.PageSize > 0 {
		start := (page.Page - 1) * page.PageSize
		if start > total {
			start = total
		}
		end := start + page.PageSize
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *fakeCaseRepo) Delete(_ context.Context, id kernel.CaseID) error {
	if _, ok := r.cases[id]; !ok {
		return casefile.ErrCaseNotFound()
	}
	delete(r.cases, id)
	return nil
}

func (r *fakeCaseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.cases)), nil
}

func (r *fakeCaseRepo) LatestUpdatedAt(_ context.Context) (time.Time, error) {
	var latest time.Time
	for _, c := range r.cases {
		if c.UpdatedAt.After(latest) {
			latest = c.UpdatedAt
		}
	}
	return latest, nil
}

func validCase(company string) casefile.Case {
	return casefile.Case{
		CompanyName:  company,
		BranchNumber: "001",
		CIFName:      "山田太郎",
		CaseType:     "相続",
		FAName:       "佐藤",
		StaffName:    "鈴木",
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := casefilesrv.NewService(newFakeCaseRepo())

	c := validCase("テスト商事")
	c.CIFName = ""
	_, err := svc.Create(context.Background(), c)
	if err == nil {
		t.Fatal("expected validation error for missing cif_name")
	}
	var xerr *errx.Error
	if !errx.As(err, &xerr) || xerr.Type != errx.TypeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := casefilesrv.NewService(newFakeCaseRepo())

	created, err := svc.Create(context.Background(), validCase("テスト商事"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyName != "テスト商事" {
		t.Fatalf("unexpected company name %q", got.CompanyName)
	}
}

func TestListPaginates(t *testing.T) {
	repo := newFakeCaseRepo()
	svc := casefilesrv.NewService(repo)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), validCase("テスト商事")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.List(context.Background(), casefile.Filter{}, kernel.PaginationOptions{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(page.Items))
	}
	if page.Page.Total != 5 || page.Page.Pages != 3 {
		t.Fatalf("unexpected pagination metadata: %+v", page.Page)
	}
	if !page.HasNext() || !page.HasPrevious() {
		t.Fatal("page 2 of 3 should have both neighbours")
	}
}

func TestListDefaultsPageSize(t *testing.T) {
	svc := casefilesrv.NewService(newFakeCaseRepo())

	page, err := svc.List(context.Background(), casefile.Filter{}, kernel.PaginationOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Number != 1 || page.Page.Size != 20 {
		t.Fatalf("expected defaulted pagination, got %+v", page.Page)
	}
	if !page.Empty {
		t.Fatal("expected empty page")
	}
}

func TestUpdateOverwrites(t *testing.T) {
	svc := casefilesrv.NewService(newFakeCaseRepo())

	created, err := svc.Create(context.Background(), validCase("テスト商事"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed := validCase("新テスト商事")
	updated, err := svc.Update(context.Background(), created.ID, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed the ID: %d -> %d", created.ID.Int64(), updated.ID.Int64())
	}
	if updated.CompanyName != "新テスト商事" {
		t.Fatalf("unexpected company name %q", updated.CompanyName)
	}
}
