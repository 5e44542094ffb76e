//go:build ocr

// Package visiontesseract adapts the Tesseract OCR engine as a vision
// reader. Unlike the LLM-backed readers it does not follow prompts: it
// recognizes all printed text and, when target fields are supplied, keeps
// only the lines mentioning one of them.
//
// Tesseract must be installed on the system and the code built with the
// "ocr" tag:
//
//	go build -tags ocr
package visiontesseract

import (
	"context"
	"strings"
	"sync"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Reader implements vision.Reader and vision.FieldReader over gosseract.
type Reader struct {
	mu        sync.Mutex
	client    *gosseract.Client
	languages []string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLanguages sets the recognition languages, e.g. "jpn", "eng".
func WithLanguages(langs ...string) ReaderOption {
	return func(r *Reader) { r.languages = langs }
}

// NewReader creates a Tesseract reader. Close it to release engine
// resources.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		client:    gosseract.NewClient(),
		languages: []string{"jpn", "eng"},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.client.SetLanguage(r.languages...); err != nil {
		r.client.Close()
		return nil, errorRegistry.NewWithCause(ErrRecognition, err)
	}
	return r, nil
}

// Close releases the Tesseract engine.
func (r *Reader) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Name implements vision.Reader.
func (r *Reader) Name() string { return "tesseract" }

// Extract implements vision.Reader. The prompt is ignored; the full
// recognized text is returned.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	return vision.ReadPages(ctx, prompt, pages, func(ctx context.Context, _ string, page imaging.Page) (string, error) {
		return r.recognize(page)
	})
}

// ExtractFields implements vision.FieldReader: recognized lines are kept
// only when they mention one of the target fields.
func (r *Reader) ExtractFields(ctx context.Context, fields []string, pages []imaging.Page) (string, error) {
	text, err := r.Extract(ctx, "", pages)
	if err != nil {
		return "", err
	}
	return FilterLines(text, fields), nil
}

func (r *Reader) recognize(page imaging.Page) (string, error) {
	// gosseract clients are not safe for concurrent use.
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.SetImageFromBytes(page.PNG); err != nil {
		return "", errorRegistry.NewWithCause(ErrRecognition, err).WithDetail("page", page.Number)
	}
	text, err := r.client.Text()
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrRecognition, err).WithDetail("page", page.Number)
	}
	return text, nil
}
