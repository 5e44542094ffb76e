package visionanthropic

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
)

const defaultModel = "claude-sonnet-4-20250514"

// Reader implements vision.Reader against the Anthropic Messages API.
type Reader struct {
	client    anthropic.Client
	apiKey    string
	model     string
	maxTokens int64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithModel overrides the default model.
func WithModel(model string) ReaderOption {
	return func(r *Reader) { r.model = model }
}

// WithMaxTokens overrides the completion token cap.
func WithMaxTokens(n int64) ReaderOption {
	return func(r *Reader) { r.maxTokens = n }
}

// NewReader creates an Anthropic vision reader. An empty apiKey falls back
// to the ANTHROPIC_API_KEY environment variable.
func NewReader(apiKey string, opts ...ReaderOption) *Reader {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	r := &Reader{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		apiKey:    apiKey,
		model:     defaultModel,
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements vision.Reader.
func (r *Reader) Name() string { return "anthropic" }

// Extract implements vision.Reader.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	if r.apiKey == "" {
		return "", errorRegistry.New(ErrMissingAPIKey)
	}
	return vision.ReadPages(ctx, prompt, pages, r.readPage)
}

func (r *Reader) readPage(ctx context.Context, prompt string, page imaging.Page) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(page.PNG)

	message, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: r.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/png", encoded),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", ParseAnthropicError(err).
			WithDetail("model", r.model).
			WithDetail("page", page.Number)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}
	return text, nil
}
