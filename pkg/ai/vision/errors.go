package vision

import (
	"net/http"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION")

	ErrNoReaders = errorRegistry.Register(
		"NO_READERS",
		errx.TypeValidation,
		http.StatusBadRequest,
		"No vision providers selected",
	)

	ErrUnknownReader = errorRegistry.Register(
		"UNKNOWN_READER",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Requested vision provider is not registered",
	)

	ErrInvalidRepeat = errorRegistry.Register(
		"INVALID_REPEAT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Repeat count must be at least 1",
	)

	ErrInvalidTaskKind = errorRegistry.Register(
		"INVALID_TASK_KIND",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Task kind must be classification or regression",
	)

	ErrNoPages = errorRegistry.Register(
		"NO_PAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Document produced no pages to read",
	)

	ErrCacheRead = errorRegistry.Register(
		"CACHE_READ_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to read cached provider result",
	)

	ErrCacheWrite = errorRegistry.Register(
		"CACHE_WRITE_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to cache provider result",
	)
)

// ProviderError carries the provider name and the classified cause of a
// failed read. Sibling providers in the same batch are unaffected.
type ProviderError struct {
	Provider string
	Err      *errx.Error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps a classified errx error with the provider name.
func NewProviderError(provider string, err *errx.Error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}
