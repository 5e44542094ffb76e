//go:build !ocr

// Package visiontesseract adapts the Tesseract OCR engine as a vision
// reader.
//
// This is the stub used when the "ocr" build tag is not set; every
// extraction returns ErrNotEnabled. Rebuild with -tags ocr (Tesseract
// installed) to enable it.
package visiontesseract

import (
	"context"

	"github.com/casedesk/casedesk/pkg/imaging"
)

// Reader is the disabled Tesseract reader.
type Reader struct{}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLanguages sets the recognition languages, e.g. "jpn", "eng".
func WithLanguages(langs ...string) ReaderOption {
	return func(r *Reader) {}
}

// NewReader returns a reader whose extractions always fail with
// ErrNotEnabled.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	return &Reader{}, nil
}

// Close releases nothing in the stub.
func (r *Reader) Close() error { return nil }

// Name implements vision.Reader.
func (r *Reader) Name() string { return "tesseract" }

// Extract implements vision.Reader.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	return "", errorRegistry.New(ErrNotEnabled)
}

// ExtractFields implements vision.FieldReader.
func (r *Reader) ExtractFields(ctx context.Context, fields []string, pages []imaging.Page) (string, error) {
	return "", errorRegistry.New(ErrNotEnabled)
}
