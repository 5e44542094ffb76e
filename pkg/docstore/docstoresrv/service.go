package docstoresrv

import (
	"context"
	"strings"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/docstore"
	"github.com/casedesk/casedesk/pkg/fsx"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/logx"
)

// ExtractRequest describes one extraction batch over a stored record.
type ExtractRequest struct {
	Providers []string `json:"providers"`
	Repeat    int      `json:"repeat"`
	TaskKind  string   `json:"task_kind"`
	Table     bool     `json:"table"`
}

// Service owns document upload, extraction batches and result write-back.
type Service struct {
	records    docstore.RecordRepository
	files      fsx.FileSystem
	normalizer *imaging.Normalizer
	runner     *vision.Runner
	cache      vision.ResultCache
	precedence []string
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithResultPrecedence sets the provider order used when persisting a result
// without an explicit provider choice.
func WithResultPrecedence(providers []string) ServiceOption {
	return func(s *Service) { s.precedence = providers }
}

// NewService wires the document service.
func NewService(records docstore.RecordRepository, files fsx.FileSystem, normalizer *imaging.Normalizer, runner *vision.Runner, cache vision.ResultCache, opts ...ServiceOption) *Service {
	s := &Service{
		records:    records,
		files:      files,
		normalizer: normalizer,
		runner:     runner,
		cache:      cache,
		precedence: []string{"anthropic", "openai"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload stores the scan bytes and registers an OCR record for it.
func (s *Service) Upload(ctx context.Context, filename string, data []byte, wantToRead, label string) (*docstore.Record, error) {
	if filename == "" || len(data) == 0 {
		return nil, docstore.ErrInvalidRecord().WithDetail("reason", "filename and file bytes are required")
	}
	if strings.TrimSpace(wantToRead) == "" {
		return nil, docstore.ErrInvalidRecord().WithDetail("reason", "want_to_read is required")
	}
	if kind := imaging.Classify(filename); kind == imaging.KindOther {
		return nil, docstore.ErrInvalidRecord().
			WithDetail("reason", "unsupported file type").
			WithDetail("filename", filename)
	}

	if err := s.files.WriteFile(ctx, filename, data); err != nil {
		return nil, err
	}

	record, err := s.records.Create(ctx, docstore.Record{
		Filename:   filename,
		WantToRead: wantToRead,
		Label:      label,
	})
	if err != nil {
		return nil, err
	}

	logx.Infof("document uploaded: %s (%d bytes, label=%s)", filename, len(data), label)
	return record, nil
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id kernel.RecordID) (*docstore.Record, error) {
	return s.records.FindByID(ctx, id)
}

// List returns records matching the filter.
func (s *Service) List(ctx context.Context, filter docstore.Filter) ([]docstore.Record, error) {
	return s.records.List(ctx, filter)
}

// ListPending returns records awaiting extraction.
func (s *Service) ListPending(ctx context.Context, label string) ([]docstore.Record, error) {
	return s.records.ListPending(ctx, label)
}

// Count returns the number of registered records.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.records.Count(ctx)
}

// Delete removes the record and its stored file. A missing file is logged
// but does not block record deletion.
func (s *Service) Delete(ctx context.Context, id kernel.RecordID) error {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.DeleteFile(ctx, record.Filename); err != nil {
		logx.Warnf("could not delete stored file %s: %v", record.Filename, err)
	}

	return s.records.Delete(ctx, id)
}

// Extract runs a multi-provider extraction batch over the record's stored
// scan and returns every per-(provider, run) result plus the consensus
// sequence. Provider failures inside the batch surface as per-call errors,
// never as a batch failure.
func (s *Service) Extract(ctx context.Context, id kernel.RecordID, req ExtractRequest) (*vision.BatchResult, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taskKind, err := vision.ParseTaskKind(req.TaskKind)
	if err != nil {
		return nil, err
	}

	pages, err := s.loadPages(ctx, record)
	if err != nil {
		return nil, err
	}

	template := vision.TemplateFields
	if req.Table {
		template = vision.TemplateTable
	}
	repeat := req.Repeat
	if repeat == 0 {
		repeat = 1
	}

	return s.runner.Run(ctx, pages, vision.BatchSpec{
		DocumentID: record.Filename,
		Providers:  req.Providers,
		Fields:     record.TargetFields(),
		Template:   template,
		TaskKind:   taskKind,
		Repeat:     repeat,
	})
}

// SaveResult persists a provider's latest cached response to the record.
// An empty provider walks the configured precedence order and takes the
// first provider with a cached response. Write-back is last-write-wins.
func (s *Service) SaveResult(ctx context.Context, id kernel.RecordID, provider string) (*docstore.Record, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates := s.precedence
	if provider != "" {
		candidates = []string{provider}
	}

	text, found := "", false
	for _, p := range candidates {
		if t, ok := s.latestCached(ctx, record.Filename, p); ok {
			text, found = t, true
			break
		}
	}
	if !found {
		return nil, docstore.ErrRecordNotFound().
			WithDetail("reason", "no cached extraction result for record").
			WithDetail("id", id.Int64())
	}

	if err := s.records.WriteResult(ctx, id, text); err != nil {
		return nil, err
	}
	return s.records.FindByID(ctx, id)
}

// latestCached returns the highest-run cached response for the provider.
func (s *Service) latestCached(ctx context.Context, documentID, provider string) (string, bool) {
	var latest string
	found := false
	for run := 1; ; run++ {
		text, ok, err := s.cache.Get(ctx, vision.CacheKey{
			DocumentID: documentID,
			Provider:   provider,
			Run:        run,
		})
		if err != nil || !ok {
			break
		}
		latest, found = text, true
	}
	return latest, found
}

func (s *Service) loadPages(ctx context.Context, record *docstore.Record) ([]imaging.Page, error) {
	exists, err := s.files.Exists(ctx, record.Filename)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, docstore.ErrFileMissing().WithDetail("filename", record.Filename)
	}

	data, err := s.files.ReadFile(ctx, record.Filename)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(ctx, record.Filename, data)
}
