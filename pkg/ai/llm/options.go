package llm

// ResponseFormatType represents the format type for model outputs
type ResponseFormatType string

const (
	// JSONObject requests output in JSON object format
	JSONObject ResponseFormatType = "json_object"
	// TextFormat requests output in plain text (default)
	TextFormat ResponseFormatType = "text"
)

// ResponseFormat specifies the desired output format
type ResponseFormat struct {
	Type ResponseFormatType `json:"type"`
}

// ChatOptions holds per-call options
type ChatOptions struct {
	Model          string
	Temperature    float32
	TopP           float32
	MaxTokens      int
	Stop           []string
	ResponseFormat *ResponseFormat
}

// Option mutates ChatOptions
type Option func(*ChatOptions)

// DefaultOptions returns the baseline options
func DefaultOptions() *ChatOptions {
	return &ChatOptions{
		MaxTokens: 2048,
	}
}

// WithModel selects the model
func WithModel(model string) Option {
	return func(o *ChatOptions) { o.Model = model }
}

// WithTemperature sets sampling temperature
func WithTemperature(t float32) Option {
	return func(o *ChatOptions) { o.Temperature = t }
}

// WithTopP sets nucleus sampling probability
func WithTopP(p float32) Option {
	return func(o *ChatOptions) { o.TopP = p }
}

// WithMaxTokens caps the completion length
func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) { o.MaxTokens = n }
}

// WithStop sets stop sequences
func WithStop(stop ...string) Option {
	return func(o *ChatOptions) { o.Stop = stop }
}

// WithJSONResponseFormat sets the response format to JSON object
func WithJSONResponseFormat() Option {
	return func(o *ChatOptions) {
		o.ResponseFormat = &ResponseFormat{Type: JSONObject}
	}
}
