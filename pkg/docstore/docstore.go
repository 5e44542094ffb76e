package docstore

import (
	"net/http"
	"strings"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("DOCSTORE")

var (
	CodeRecordNotFound = ErrRegistry.Register("RECORD_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "OCR record not found")
	CodeFileMissing    = ErrRegistry.Register("FILE_MISSING", errx.TypeNotFound, http.StatusNotFound, "Stored document file not found")
	CodeInvalidRecord  = ErrRegistry.Register("INVALID_RECORD", errx.TypeValidation, http.StatusBadRequest, "Invalid OCR record")
	CodeStoreFailure   = ErrRegistry.Register("STORE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "OCR record store operation failed")
)

func ErrRecordNotFound() *errx.Error {
	return ErrRegistry.New(CodeRecordNotFound)
}

func ErrFileMissing() *errx.Error {
	return ErrRegistry.New(CodeFileMissing)
}

func ErrInvalidRecord() *errx.Error {
	return ErrRegistry.New(CodeInvalidRecord)
}

// Record is one row of the OCR table: a stored scan plus what to extract
// from it and, once processed, the accepted extraction result.
type Record struct {
	ID         kernel.RecordID `json:"id" db:"id"`
	Filename   string          `json:"filename" db:"filename"`
	WantToRead string          `json:"want_to_read" db:"want_to_read"`
	Label      string          `json:"label" db:"label"`
	Result     *string         `json:"result" db:"result"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// TargetFields splits the comma-separated want_to_read column into the
// individual extraction targets. Both ASCII and full-width commas appear in
// stored data.
func (r *Record) TargetFields() []string {
	split := strings.FieldsFunc(r.WantToRead, func(c rune) bool {
		return c == ',' || c == '、' || c == '，'
	})
	fields := make([]string, 0, len(split))
	for _, f := range split {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// HasResult reports whether an extraction result has been written back.
func (r *Record) HasResult() bool {
	return r.Result != nil && *r.Result != ""
}

// Filter narrows record listings. Zero values match everything.
type Filter struct {
	// Label matches records with this exact label.
	Label string
	// PendingOnly keeps only records without a written result.
	PendingOnly bool
}
