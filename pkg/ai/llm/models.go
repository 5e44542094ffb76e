package llm

import "strings"

// Role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentPartType represents the type of a content part
type ContentPartType string

const (
	ContentPartTypeText     ContentPartType = "text"
	ContentPartTypeImageURL ContentPartType = "image_url"
)

// ImageURL references an image by URL or base64 data URI
type ImageURL struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
}

// ContentPart represents one part of a multimodal message
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *ImageURL       `json:"image_url,omitempty"`
}

// TextPart creates a text content part
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartTypeText, Text: text}
}

// ImagePart creates an image content part from a URL or base64 data URI
func ImagePart(url, mimeType string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImageURL,
		ImageURL: &ImageURL{URL: url, MimeType: mimeType},
	}
}

// Message represents a chat message
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content,omitempty"`
	MultiContent []ContentPart `json:"multi_content,omitempty"` // takes precedence over Content
}

// IsMultimodal returns true if the message contains multimodal content parts
func (m Message) IsMultimodal() bool {
	return len(m.MultiContent) > 0
}

// TextContent returns the text content of the message, extracting from
// MultiContent parts if necessary
func (m Message) TextContent() string {
	if !m.IsMultimodal() {
		return m.Content
	}
	var parts []string
	for _, p := range m.MultiContent {
		if p.Type == ContentPartTypeText {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// NewUserMessage creates a new user message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewMultimodalUserMessage creates a user message with multimodal content parts
func NewMultimodalUserMessage(parts ...ContentPart) Message {
	return Message{Role: RoleUser, MultiContent: parts}
}

// NewSystemMessage creates a new system message
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewAssistantMessage creates a new assistant message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the result of one chat call
type Response struct {
	Message      Message `json:"message"`
	Usage        Usage   `json:"usage"`
	Model        string  `json:"model,omitempty"`
	FinishReason string  `json:"finish_reason,omitempty"`
}
