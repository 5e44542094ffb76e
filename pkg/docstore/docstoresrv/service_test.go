package docstoresrv_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/docstore"
	"github.com/casedesk/casedesk/pkg/docstore/docstoresrv"
	"github.com/casedesk/casedesk/pkg/fsx"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/casedesk/casedesk/pkg/kernel"
)

// fakeRepo is an in-memory RecordRepository.
type fakeRepo struct {
	nextID  int64
	records map[kernel.RecordID]docstore.Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, records: make(map[kernel.RecordID]docstore.Record)}
}

func (r *fakeRepo) Create(_ context.Context, record docstore.Record) (*docstore.Record, error) {
	record.ID = kernel.NewRecordID(r.nextID)
	r.nextID++
	r.records[record.ID] = record
	return &record, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id kernel.RecordID) (*docstore.Record, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, docstore.ErrRecordNotFound()
	}
	return &record, nil
}

func (r *fakeRepo) List(_ context.Context, filter docstore.Filter) ([]docstore.Record, error) {
	var out []docstore.Record
	for _, rec := range r.records {
		if filter.Label != "" && rec.Label != filter.Label {
			continue
		}
		if filter.PendingOnly && rec.HasResult() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRepo) ListPending(ctx context.Context, label string) ([]docstore.Record, error) {
	return r.List(ctx, docstore.Filter{Label: label, PendingOnly: true})
}

func (r *fakeRepo) WriteResult(_ context.Context, id kernel.RecordID, text string) error {
	record, ok := r.records[id]
	if !ok {
		return docstore.ErrRecordNotFound()
	}
	record.Result = &text
	r.records[id] = record
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id kernel.RecordID) error {
	if _, ok := r.records[id]; !ok {
		return docstore.ErrRecordNotFound()
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

// fakeFS is an in-memory FileSystem.
type fakeFS struct {
	files map[string][]byte
}

func newFakeFS() *fakeFS { return &fakeFS{files: make(map[string][]byte)} }

func (f *fakeFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, docstore.ErrFileMissing()
	}
	return data, nil
}

func (f *fakeFS) Stat(_ context.Context, path string) (fsx.FileInfo, error) {
	return fsx.FileInfo{Name: path, Size: int64(len(f.files[path]))}, nil
}

func (f *fakeFS) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeFS) WriteFile(_ context.Context, path string, data []byte) error {
	f.files[path] = data
	return nil
}

func (f *fakeFS) DeleteFile(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeFS) Join(elem ...string) string {
	out := ""
	for i, e := range elem {
		if i > 0 {
			out += "/"
		}
		out += e
	}
	return out
}

type fixedReader struct {
	name string
	text string
}

func (f *fixedReader) Name() string { return f.name }

func (f *fixedReader) Extract(context.Context, string, []imaging.Page) (string, error) {
	return f.text, nil
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func newService(t *testing.T, readers ...vision.Reader) (*docstoresrv.Service, *fakeRepo, *fakeFS, vision.ResultCache) {
	t.Helper()
	repo := newFakeRepo()
	fs := newFakeFS()
	cache := vision.NewMemoryCache()
	runner := vision.NewRunner(vision.NewRegistry(readers...), cache)
	svc := docstoresrv.NewService(repo, fs, imaging.NewNormalizer(imaging.Options{}, nil), runner, cache)
	return svc, repo, fs, cache
}

func TestService_UploadAndList(t *testing.T) {
	svc, _, fs, _ := newService(t)

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "会社名, 売上高", "insurance")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if record.ID.IsEmpty() {
		t.Fatal("expected assigned record ID")
	}
	if _, ok := fs.files["scan.png"]; !ok {
		t.Fatal("file bytes not stored")
	}

	fields := record.TargetFields()
	if len(fields) != 2 || fields[0] != "会社名" || fields[1] != "売上高" {
		t.Fatalf("unexpected target fields: %v", fields)
	}

	pending, err := svc.ListPending(context.Background(), "insurance")
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected 1 pending record, got %d (%v)", len(pending), err)
	}
}

func TestService_UploadRejectsUnsupportedType(t *testing.T) {
	svc, _, _, _ := newService(t)

	if _, err := svc.Upload(context.Background(), "notes.txt", []byte("x"), "field", ""); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestService_UploadRequiresWantToRead(t *testing.T) {
	svc, _, _, _ := newService(t)

	if _, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "  ", ""); err == nil {
		t.Fatal("expected error for blank want_to_read")
	}
}

func TestService_ExtractRunsBatch(t *testing.T) {
	svc, _, _, _ := newService(t, &fixedReader{name: "a", text: "X"}, &fixedReader{name: "b", text: "X"})

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "label", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	batch, err := svc.Extract(context.Background(), record.ID, docstoresrv.ExtractRequest{
		Providers: []string{"a", "b"},
		Repeat:    2,
		TaskKind:  "classification",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(batch.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(batch.Results))
	}
	if len(batch.Consensus) != 2 || batch.Consensus[0].Value != "X" {
		t.Fatalf("unexpected consensus: %+v", batch.Consensus)
	}
}

func TestService_SaveResultUsesPrecedence(t *testing.T) {
	svc, repo, _, cache := newService(t)

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "label", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// Only openai has a cached answer; precedence should fall through to it.
	key := vision.CacheKey{DocumentID: "scan.png", Provider: "openai", Run: 1}
	if err := cache.Set(context.Background(), key, "openai-answer"); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	saved, err := svc.SaveResult(context.Background(), record.ID, "")
	if err != nil {
		t.Fatalf("save result failed: %v", err)
	}
	if !saved.HasResult() || *saved.Result != "openai-answer" {
		t.Fatalf("unexpected saved result: %+v", saved.Result)
	}

	// Last write wins: an anthropic answer now takes precedence.
	key = vision.CacheKey{DocumentID: "scan.png", Provider: "anthropic", Run: 1}
	_ = cache.Set(context.Background(), key, "anthropic-answer")
	saved, err = svc.SaveResult(context.Background(), record.ID, "")
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if *saved.Result != "anthropic-answer" {
		t.Fatalf("expected anthropic-answer, got %q", *saved.Result)
	}

	stored, _ := repo.FindByID(context.Background(), record.ID)
	if *stored.Result != "anthropic-answer" {
		t.Fatalf("repo not updated, got %q", *stored.Result)
	}
}

func TestService_SaveResultLatestRun(t *testing.T) {
	svc, _, _, cache := newService(t)

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "label", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	for run, text := range map[int]string{1: "first", 2: "second"} {
		key := vision.CacheKey{DocumentID: "scan.png", Provider: "anthropic", Run: run}
		_ = cache.Set(context.Background(), key, text)
	}

	saved, err := svc.SaveResult(context.Background(), record.ID, "anthropic")
	if err != nil {
		t.Fatalf("save result failed: %v", err)
	}
	if *saved.Result != "second" {
		t.Fatalf("expected latest run result, got %q", *saved.Result)
	}
}

func TestService_SaveResultNoCachedAnswer(t *testing.T) {
	svc, _, _, _ := newService(t)

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "label", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if _, err := svc.SaveResult(context.Background(), record.ID, ""); err == nil {
		t.Fatal("expected error when nothing is cached")
	}
}

func TestService_DeleteRemovesFile(t *testing.T) {
	svc, _, fs, _ := newService(t)

	record, err := svc.Upload(context.Background(), "scan.png", smallPNG(t), "label", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := fs.files["scan.png"]; ok {
		t.Fatal("stored file not removed")
	}
}
