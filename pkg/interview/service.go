package interview

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/casedesk/casedesk/pkg/ai/llm"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/logx"
)

const (
	formatSystemPrompt = "あなたは日本語の会話記録を整形する専門家です。自然な日本語表現を使用し、話者を明確に区別し、会話の流れを保ちながら、重要なポイントを強調してください。"

	summarizeSystemPrompt = "あなたはテキストを要約する専門家です。重要なポイントを漏れなく抽出し、簡潔にまとめてください。"

	mergeSystemPrompt = "あなたは複数の要約を統合する専門家です。重複を避け、重要なポイントを漏れなく含めてください。"

	categorizeSystemPrompt = "あなたは金融機関の面談記録を分析する専門家です。"
)

// SummaryResult pairs the conversation-formatted transcript with its final
// summary.
type SummaryResult struct {
	FormattedText string `json:"formatted_text"`
	Summary       string `json:"summary"`
}

// Service runs transcript processing through a chat model.
type Service struct {
	chat       llm.Chat
	summaries  SummaryRepository
	chunkRunes int
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithChunkRunes overrides the per-chunk rune budget.
func WithChunkRunes(n int) ServiceOption {
	return func(s *Service) { s.chunkRunes = n }
}

// WithSummaryStore enables persisting case summaries.
func WithSummaryStore(repo SummaryRepository) ServiceOption {
	return func(s *Service) { s.summaries = repo }
}

// NewService creates an interview service over the given chat provider.
func NewService(chat llm.Chat, opts ...ServiceOption) *Service {
	s := &Service{chat: chat, chunkRunes: DefaultChunkRunes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FormatConversation reshapes a raw transcript into speaker-labelled
// conversation form. On model failure the raw text is returned unchanged so
// downstream steps still have input.
func (s *Service) FormatConversation(ctx context.Context, text string) string {
	prompt := "以下のテキストを自然な日本語の会話形式に整形してください。\n" +
		"話者を明確に区別し、「話者A:」「話者B:」などの形式で表示してください。\n" +
		"会話の流れを自然に保ち、重要な情報は漏れなく含めてください。\n" +
		"不自然な改行や空白を整理し、句読点の使い方を統一してください。\n\n" +
		"テキスト:\n" + text

	resp, err := s.chat.Chat(ctx,
		[]llm.Message{
			llm.NewSystemMessage(formatSystemPrompt),
			llm.NewUserMessage(prompt),
		},
		llm.WithTemperature(0.3),
	)
	if err != nil {
		logx.Warnf("conversation formatting failed, keeping raw transcript: %v", err)
		return text
	}
	return strings.TrimSpace(resp.Message.Content)
}

// Summarize formats the transcript, summarizes it chunk by chunk and merges
// the partial summaries into one.
func (s *Service) Summarize(ctx context.Context, text string) (*SummaryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTranscript()
	}

	formatted := s.FormatConversation(ctx, text)

	chunks := SplitText(formatted, s.chunkRunes)
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.summarizeChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		logx.Debugf("summarized chunk %d/%d", i+1, len(chunks))
		summaries = append(summaries, summary)
	}

	merged, err := s.mergeSummaries(ctx, summaries)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{FormattedText: formatted, Summary: merged}, nil
}

// SummarizeCase summarizes a transcript and attaches the result to a case.
// Without a summary store the record is returned unsaved.
func (s *Service) SummarizeCase(ctx context.Context, caseID kernel.CaseID, text string) (*SummaryRecord, error) {
	result, err := s.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}

	record := SummaryRecord{
		CaseID:        caseID,
		FormattedText: result.FormattedText,
		Summary:       result.Summary,
	}
	if s.summaries == nil {
		return &record, nil
	}
	return s.summaries.SaveSummary(ctx, record)
}

// ListSummaries returns a case's stored summaries, newest first.
func (s *Service) ListSummaries(ctx context.Context, caseID kernel.CaseID) ([]SummaryRecord, error) {
	if s.summaries == nil {
		return []SummaryRecord{}, nil
	}
	return s.summaries.ListSummaries(ctx, caseID)
}

func (s *Service) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	prompt := "以下のテキストを要約してください。\n" +
		"重要なポイントを漏れなく抽出し、簡潔にまとめてください。\n\n" +
		"テキスト:\n" + chunk

	resp, err := s.chat.Chat(ctx,
		[]llm.Message{
			llm.NewSystemMessage(summarizeSystemPrompt),
			llm.NewUserMessage(prompt),
		},
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

func (s *Service) mergeSummaries(ctx context.Context, summaries []string) (string, error) {
	if len(summaries) == 0 {
		return "", nil
	}
	if len(summaries) == 1 {
		return summaries[0], nil
	}

	prompt := "以下の複数の要約を統合し、1つの要約にまとめてください。\n" +
		"重複を避け、重要なポイントを漏れなく含めてください。\n\n" +
		"要約:\n" + strings.Join(summaries, "\n")

	resp, err := s.chat.Chat(ctx,
		[]llm.Message{
			llm.NewSystemMessage(mergeSystemPrompt),
			llm.NewUserMessage(prompt),
		},
		llm.WithTemperature(0.3),
	)
	if err != nil {
		// Partial summaries are still useful; join them as a fallback.
		logx.Warnf("summary merge failed, joining chunk summaries: %v", err)
		return strings.Join(summaries, "\n"), nil
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// Categorize classifies a transcript into the given questionnaire
// categories. Category values missing from the transcript come back as
// empty strings, matching the prompt contract.
func (s *Service) Categorize(ctx context.Context, text string, categories map[string]any) (map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTranscript()
	}

	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeCategorize, err)
	}

	prompt := "以下のテキストを、以下のカテゴリに分類してください。\n" +
		"各カテゴリの内容を抽出し、JSON形式で返してください。\n\n" +
		"カテゴリ:\n" + string(categoriesJSON) + "\n\n" +
		"テキスト:\n" + text + "\n\n" +
		"注意事項:\n" +
		"1. 各カテゴリの情報が存在しない場合は空文字列(\"\")を返してください\n" +
		"2. 金額は数値のみを返してください\n" +
		"3. 日付はYYYY-MM-DD形式で返してください\n" +
		"4. 金融商品の種類は具体的な商品名を返してください"

	resp, err := s.chat.Chat(ctx,
		[]llm.Message{
			llm.NewSystemMessage(categorizeSystemPrompt),
			llm.NewUserMessage(prompt),
		},
		llm.WithJSONResponseFormat(),
	)
	if err != nil {
		return nil, err
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(resp.Message.Content), &result); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeCategorize, err).
			WithDetail("response", resp.Message.Content)
	}

	// Every requested category appears in the result, empty when absent.
	for category := range categories {
		if _, ok := result[category]; !ok {
			result[category] = ""
		}
	}
	return result, nil
}
