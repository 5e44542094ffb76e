// Package questionnaire holds the intake question bank and per-case
// answers.
package questionnaire

import (
	"net/http"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("QUESTIONNAIRE")

var (
	CodeQuestionNotFound = ErrRegistry.Register("QUESTION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Question not found")
	CodeInvalidAnswer    = ErrRegistry.Register("INVALID_ANSWER", errx.TypeValidation, http.StatusBadRequest, "Invalid answer")
)

func ErrQuestionNotFound() *errx.Error {
	return ErrRegistry.New(CodeQuestionNotFound)
}

func ErrInvalidAnswer() *errx.Error {
	return ErrRegistry.New(CodeInvalidAnswer)
}

// Question is one entry of the question bank.
type Question struct {
	ID            int64  `json:"id" db:"id"`
	Category      string `json:"category" db:"category"`
	Subcategory   string `json:"subcategory" db:"subcategory"`
	QuestionText  string `json:"question_text" db:"question_text"`
	AnswerFormat  string `json:"answer_format" db:"answer_format"`
	FieldName     string `json:"field_name" db:"field_name"`
	AnswerExample string `json:"answer_example" db:"answer_example"`
	Notes         string `json:"notes" db:"notes"`
}

// Answer is one case's answer to one question. Re-answering overwrites.
type Answer struct {
	ID         int64         `json:"id" db:"id"`
	CaseID     kernel.CaseID `json:"case_id" db:"case_id"`
	QuestionID int64         `json:"question_id" db:"question_id"`
	Value      string        `json:"value" db:"value"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// CategoryMap groups question field names by category, in the shape the
// interview categorizer prompts with.
func CategoryMap(questions []Question) map[string]any {
	out := make(map[string]any)
	for _, q := range questions {
		fields, _ := out[q.Category].(map[string]string)
		if fields == nil {
			fields = make(map[string]string)
			out[q.Category] = fields
		}
		fields[q.FieldName] = q.AnswerExample
	}
	return out
}
