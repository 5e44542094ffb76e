package visionopenai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultModel = "gpt-4o"

// Reader implements vision.Reader against the OpenAI chat completions API,
// sending each page as a base64 data URI image part.
type Reader struct {
	client    openai.Client
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

// NewReader creates an OpenAI vision reader. An empty apiKey falls back to
// the OPENAI_API_KEY environment variable.
func NewReader(apiKey string, opts ...ReaderOption) *Reader {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	r := &Reader{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
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
func (r *Reader) Name() string { return "openai" }

// Extract implements vision.Reader.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	if r.apiKey == "" {
		return "", errorRegistry.New(ErrMissingAPIKey)
	}
	return vision.ReadPages(ctx, prompt, pages, r.readPage)
}

func (r *Reader) readPage(ctx context.Context, prompt string, page imaging.Page) (string, error) {
	dataURI := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(page.PNG))

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURI,
		}),
		openai.TextContentPart(prompt),
	}

	completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     r.model,
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		MaxTokens: openai.Int(r.maxTokens),
	})
	if err != nil {
		return "", ParseOpenAIError(err).
			WithDetail("model", r.model).
			WithDetail("page", page.Number)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}
	return completion.Choices[0].Message.Content, nil
}
