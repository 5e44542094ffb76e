package visiongemini

import (
	"context"
	"os"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Reader implements vision.Reader against the Gemini API, sending each page
// as inline PNG bytes.
type Reader struct {
	client *genai.Client
	model  string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithModel overrides the default model.
func WithModel(model string) ReaderOption {
	return func(r *Reader) { r.model = model }
}

// NewReader creates a Gemini vision reader. An empty apiKey falls back to
// the GEMINI_API_KEY environment variable.
func NewReader(ctx context.Context, apiKey string, opts ...ReaderOption) (*Reader, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrClientInit, err)
	}

	r := &Reader{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Name implements vision.Reader.
func (r *Reader) Name() string { return "gemini" }

// Extract implements vision.Reader.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	return vision.ReadPages(ctx, prompt, pages, r.readPage)
}

func (r *Reader) readPage(ctx context.Context, prompt string, page imaging.Page) (string, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(page.PNG, "image/png"),
		},
	}}

	result, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return "", ParseGeminiError(err).
			WithDetail("model", r.model).
			WithDetail("page", page.Number)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}
	return text, nil
}
