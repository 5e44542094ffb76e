package questionnaire

import (
	"context"

	"github.com/casedesk/casedesk/pkg/kernel"
)

// QuestionRepository is the read port for the question bank.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, category string) ([]Question, error)
	FindQuestion(ctx context.Context, id int64) (*Question, error)
	CountQuestions(ctx context.Context) (int64, error)
}

// AnswerRepository persists per-case answers with upsert semantics keyed by
// (case, question).
type AnswerRepository interface {
	UpsertAnswer(ctx context.Context, answer Answer) (*Answer, error)
	ListAnswers(ctx context.Context, caseID kernel.CaseID) ([]Answer, error)
}
