package llm

import "context"

// Chat is the minimal chat-completion port used by text modules
// such as interview summarization and categorization.
type Chat interface {
	// Chat sends the conversation and returns the assistant response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
	// Name identifies the backing provider.
	Name() string
}
