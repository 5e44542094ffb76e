// Package interview processes transcribed client meeting text: formatting
// raw transcripts into conversation form, summarizing long transcripts in
// chunks, and classifying content into questionnaire categories.
package interview

import (
	"net/http"
	"strings"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeEmptyTranscript = ErrRegistry.Register("EMPTY_TRANSCRIPT", errx.TypeValidation, http.StatusBadRequest, "Transcript text is empty")
	CodeCategorize      = ErrRegistry.Register("CATEGORIZE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to parse categorization response")
)

func ErrEmptyTranscript() *errx.Error {
	return ErrRegistry.New(CodeEmptyTranscript)
}

// SummaryRecord is a stored meeting summary attached to a case.
type SummaryRecord struct {
	ID            int64         `json:"id" db:"id"`
	CaseID        kernel.CaseID `json:"case_id" db:"case_id"`
	FormattedText string        `json:"formatted_text" db:"formatted_text"`
	Summary       string        `json:"summary" db:"summary"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// DefaultChunkRunes approximates the token budget of one summarization
// chunk. Japanese runs roughly one token per character, so a rune budget is
// a close stand-in for a token count.
const DefaultChunkRunes = 3000

// SplitText splits a transcript into chunks of at most maxRunes, breaking
// on Japanese sentence boundaries. Sentences longer than the budget become
// their own chunk rather than being cut mid-sentence.
func SplitText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = DefaultChunkRunes
	}

	sentences := strings.SplitAfter(text, "。")
	var chunks []string
	var current strings.Builder
	currentRunes := 0

	for _, sentence := range sentences {
		if sentence == "" {
			continue
		}
		n := len([]rune(sentence))
		if currentRunes+n > maxRunes && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentRunes = 0
		}
		current.WriteString(sentence)
		currentRunes += n
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
