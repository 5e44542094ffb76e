package aiopenai

import (
	"context"
	"os"

	"github.com/casedesk/casedesk/pkg/ai/llm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIProvider implements the llm.Chat interface for OpenAI
type OpenAIProvider struct {
	client openai.Client
	apiKey string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return &OpenAIProvider{
		client: client,
		apiKey: apiKey,
	}
}

// Name identifies the provider.
func (p *OpenAIProvider) Name() string { return "openai" }

func defaultChatOptions() *llm.ChatOptions {
	options := llm.DefaultOptions()
	options.Model = "gpt-4o"
	return options
}

// Chat implements the llm.Chat interface
func (p *OpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Response, error) {
	if p.apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}
	if len(messages) == 0 {
		return nil, errorRegistry.New(ErrEmptyMessages)
	}

	options := defaultChatOptions()
	for _, opt := range opts {
		opt(options)
	}

	openAIMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		openAIMessages = append(openAIMessages, convertMessage(msg))
	}

	params := openai.ChatCompletionNewParams{
		Messages: openAIMessages,
		Model:    options.Model,
	}

	if options.Temperature != 0 {
		params.Temperature = openai.Float(float64(options.Temperature))
	}
	if options.TopP != 0 {
		params.TopP = openai.Float(float64(options.TopP))
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if len(options.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: options.Stop,
		}
	}
	if options.ResponseFormat != nil && options.ResponseFormat.Type == llm.JSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, ParseOpenAIError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	if len(completion.Choices) == 0 {
		return nil, errorRegistry.New(ErrEmptyResponse).WithDetail("model", options.Model)
	}

	choice := completion.Choices[0]
	return &llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: choice.Message.Content,
		},
		Usage: llm.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
		Model:        completion.Model,
		FinishReason: string(choice.FinishReason),
	}, nil
}

func convertMessage(msg llm.Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case llm.RoleSystem:
		return openai.SystemMessage(msg.Content)
	case llm.RoleAssistant:
		return openai.AssistantMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}
