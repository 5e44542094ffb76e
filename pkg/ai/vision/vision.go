package vision

import (
	"context"
	"sort"

	"github.com/casedesk/casedesk/pkg/imaging"
)

// Reader extracts text from normalized document pages according to an
// extraction prompt. One implementation exists per external provider.
//
// Multi-page handling is the adapter's responsibility: it invokes the
// provider once per page with a page-indexed prompt, joins the per-page
// results with newlines in page order, and substitutes a placeholder for
// pages that failed instead of aborting the whole document.
type Reader interface {
	// Extract returns the raw provider text for the given pages.
	Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error)
	// Name identifies the provider, e.g. "anthropic".
	Name() string
}

// FieldReader is implemented by readers that work from the raw target
// fields instead of a natural-language prompt, such as traditional OCR
// engines that filter recognized lines by keyword. The runner prefers it
// over Extract when present.
type FieldReader interface {
	Reader
	ExtractFields(ctx context.Context, fields []string, pages []imaging.Page) (string, error)
}

// Registry holds the configured readers, selectable by name.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry builds a registry from the given readers.
func NewRegistry(readers ...Reader) *Registry {
	m := make(map[string]Reader, len(readers))
	for _, r := range readers {
		m[r.Name()] = r
	}
	return &Registry{readers: m}
}

// Get returns the reader registered under name.
func (r *Registry) Get(name string) (Reader, error) {
	reader, ok := r.readers[name]
	if !ok {
		return nil, errorRegistry.New(ErrUnknownReader).WithDetail("provider", name)
	}
	return reader, nil
}

// Names lists the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.readers))
	for name := range r.readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves the requested provider names, erroring on the first
// unknown one. An empty request selects nothing.
func (r *Registry) Select(names []string) ([]Reader, error) {
	if len(names) == 0 {
		return nil, errorRegistry.New(ErrNoReaders)
	}
	readers := make([]Reader, 0, len(names))
	for _, name := range names {
		reader, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		readers = append(readers, reader)
	}
	return readers, nil
}
