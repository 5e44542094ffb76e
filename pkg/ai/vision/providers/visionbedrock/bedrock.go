package visionbedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
)

const defaultModel = "anthropic.claude-sonnet-4-20250514-v1:0"

// Reader implements vision.Reader against the AWS Bedrock Converse API,
// sending each page as a raw PNG image block.
type Reader struct {
	client    *bedrockruntime.Client
	model     string
	maxTokens int32
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithModel overrides the default model ID.
func WithModel(model string) ReaderOption {
	return func(r *Reader) { r.model = model }
}

// WithMaxTokens overrides the completion token cap.
func WithMaxTokens(n int32) ReaderOption {
	return func(r *Reader) { r.maxTokens = n }
}

// NewReader creates a Bedrock vision reader from an AWS config.
func NewReader(cfg aws.Config, opts ...ReaderOption) *Reader {
	r := &Reader{
		client:    bedrockruntime.NewFromConfig(cfg),
		model:     defaultModel,
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements vision.Reader.
func (r *Reader) Name() string { return "bedrock" }

// Extract implements vision.Reader.
func (r *Reader) Extract(ctx context.Context, prompt string, pages []imaging.Page) (string, error) {
	return vision.ReadPages(ctx, prompt, pages, r.readPage)
}

func (r *Reader) readPage(ctx context.Context, prompt string, page imaging.Page) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(r.model),
		Messages: []types.Message{{
			Role: types.ConversationRoleUser,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberImage{
					Value: types.ImageBlock{
						Format: types.ImageFormatPng,
						Source: &types.ImageSourceMemberBytes{Value: page.PNG},
					},
				},
				&types.ContentBlockMemberText{Value: prompt},
			},
		}},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(r.maxTokens),
		},
	}

	output, err := r.client.Converse(ctx, input)
	if err != nil {
		return "", ParseBedrockError(err).
			WithDetail("model", r.model).
			WithDetail("page", page.Number)
	}

	msgOutput, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}

	var text string
	for _, block := range msgOutput.Value.Content {
		if textBlock, ok := block.(*types.ContentBlockMemberText); ok {
			text += textBlock.Value
		}
	}
	if text == "" {
		return "", errorRegistry.New(ErrEmptyResponse).WithDetail("page", page.Number)
	}
	return text, nil
}
