package vision

import (
	"context"
	"errors"
	"time"

	"github.com/casedesk/casedesk/pkg/asyncx"
	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/casedesk/casedesk/pkg/logx"
)

// BatchSpec describes one extraction batch over a single document.
type BatchSpec struct {
	DocumentID string
	Providers  []string
	Fields     []string
	Template   TemplateKind
	TaskKind   TaskKind
	Repeat     int
}

// RunResult is the outcome of one provider call within a batch.
type RunResult struct {
	Provider string          `json:"provider"`
	Run      int             `json:"run"`
	Text     string          `json:"text,omitempty"`
	Table    *ExtractedTable `json:"table,omitempty"`
	Error    *ProviderError  `json:"-"`
	ErrorMsg string          `json:"error,omitempty"`
	Cached   bool            `json:"cached"`
}

// BatchResult holds every per-call result plus the consensus sequence.
// Provider failures never remove sibling successes from Results.
type BatchResult struct {
	Results   []RunResult `json:"results"`
	Consensus []Consensus `json:"consensus"`
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCallTimeout sets the per-provider-call timeout.
func WithCallTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// WithParallel fans providers out concurrently. Repeats of one provider stay
// sequential so (provider, run) attribution is preserved.
func WithParallel() RunnerOption {
	return func(r *Runner) { r.parallel = true }
}

// Runner orchestrates a multi-provider, multi-repeat extraction batch.
// Dispatch order is provider-major, repeat-minor: all repeats of provider A,
// then all repeats of provider B. Raw responses are cached by
// (document, provider, run) so re-running a batch does not re-invoke
// providers for calls that already succeeded.
type Runner struct {
	registry *Registry
	cache    ResultCache
	timeout  time.Duration
	parallel bool
}

// NewRunner creates a batch runner over the given provider registry.
func NewRunner(registry *Registry, cache ResultCache, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		cache:    cache,
		timeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the batch against the given normalized pages and returns all
// per-call results plus one consensus per repeat index that had at least one
// successful response. Repeat indices where every provider failed are
// skipped, not zero-filled.
func (r *Runner) Run(ctx context.Context, pages []imaging.Page, spec BatchSpec) (*BatchResult, error) {
	if spec.Repeat < 1 {
		return nil, errorRegistry.New(ErrInvalidRepeat).WithDetail("repeat", spec.Repeat)
	}
	if len(pages) == 0 {
		return nil, errorRegistry.New(ErrNoPages).WithDetail("document_id", spec.DocumentID)
	}

	readers, err := r.registry.Select(spec.Providers)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(spec.Fields, spec.Template)

	var perProvider [][]RunResult
	if r.parallel {
		perProvider = r.runParallel(ctx, readers, prompt, pages, spec)
	} else {
		perProvider = make([][]RunResult, len(readers))
		for i, reader := range readers {
			perProvider[i] = r.runProvider(ctx, reader, prompt, pages, spec)
		}
	}

	batch := &BatchResult{}
	for _, results := range perProvider {
		batch.Results = append(batch.Results, results...)
	}
	batch.Consensus = r.aggregate(perProvider, spec)

	return batch, nil
}

// runParallel fans out one goroutine per provider. Each goroutine runs its
// repeats sequentially and results come back in provider input order.
func (r *Runner) runParallel(ctx context.Context, readers []Reader, prompt string, pages []imaging.Page, spec BatchSpec) [][]RunResult {
	fns := make([]func(context.Context) ([]RunResult, error), len(readers))
	for i, reader := range readers {
		reader := reader
		fns[i] = func(ctx context.Context) ([]RunResult, error) {
			return r.runProvider(ctx, reader, prompt, pages, spec), nil
		}
	}

	settled := asyncx.AllSettled(ctx, fns...)
	perProvider := make([][]RunResult, len(readers))
	for i, res := range settled {
		perProvider[i] = res.Value
	}
	return perProvider
}

// runProvider executes all repeats for one provider sequentially.
func (r *Runner) runProvider(ctx context.Context, reader Reader, prompt string, pages []imaging.Page, spec BatchSpec) []RunResult {
	results := make([]RunResult, 0, spec.Repeat)

	for run := 1; run <= spec.Repeat; run++ {
		results = append(results, r.runOnce(ctx, reader, prompt, pages, spec, run))
	}

	return results
}

func (r *Runner) runOnce(ctx context.Context, reader Reader, prompt string, pages []imaging.Page, spec BatchSpec, run int) RunResult {
	result := RunResult{Provider: reader.Name(), Run: run}
	key := CacheKey{DocumentID: spec.DocumentID, Provider: reader.Name(), Run: run}

	if r.cache != nil {
		if cached, ok, err := r.cache.Get(ctx, key); err != nil {
			logx.ErrorWith("vision cache read failed", errorRegistry.NewWithCause(ErrCacheRead, err), map[string]any{
				"key": key.String(),
			})
		} else if ok {
			result.Text = cached
			result.Cached = true
			result.Table, _ = ParseTable(cached)
			return result
		}
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var text string
	var err error
	if fr, ok := reader.(FieldReader); ok {
		text, err = fr.ExtractFields(callCtx, spec.Fields, pages)
	} else {
		text, err = reader.Extract(callCtx, prompt, pages)
	}
	if err != nil {
		perr := classifyReadError(reader.Name(), err)
		logx.ErrorWith("vision provider call failed", perr.Err, map[string]any{
			"provider":    reader.Name(),
			"document_id": spec.DocumentID,
			"run":         run,
		})
		result.Error = perr
		result.ErrorMsg = perr.Error()
		return result
	}

	result.Text = text
	result.Table, _ = ParseTable(text)

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, text); err != nil {
			logx.ErrorWith("vision cache write failed", errorRegistry.NewWithCause(ErrCacheWrite, err), map[string]any{
				"key": key.String(),
			})
		}
	}

	return result
}

// aggregate builds one Consensus per repeat index that has at least one
// successful response, preserving the original 1-based run index in
// Consensus.Run so skipped runs stay visible to the caller.
func (r *Runner) aggregate(perProvider [][]RunResult, spec BatchSpec) []Consensus {
	var sequence []Consensus

	for run := 1; run <= spec.Repeat; run++ {
		var values []string
		for _, results := range perProvider {
			for _, res := range results {
				if res.Run == run && res.Error == nil {
					values = append(values, res.Text)
				}
			}
		}
		if len(values) == 0 {
			continue
		}
		consensus := Aggregate(spec.TaskKind, values)
		consensus.Run = run
		sequence = append(sequence, consensus)
	}

	return sequence
}

// classifyReadError normalizes adapter errors into ProviderError. Adapters
// already return errx errors for SDK failures; anything else, including a
// context deadline, is wrapped as an external failure here.
func classifyReadError(provider string, err error) *ProviderError {
	var xerr *errx.Error
	if errx.As(err, &xerr) {
		return NewProviderError(provider, xerr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProviderError(provider, errx.Wrap(err, "provider call timed out", errx.TypeExternal))
	}
	return NewProviderError(provider, errx.Wrap(err, "provider call failed", errx.TypeExternal))
}
