package questionnairesrv

import (
	"context"
	"strings"

	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/questionnaire"
)

// Service owns the question bank and per-case answers.
type Service struct {
	questions questionnaire.QuestionRepository
	answers   questionnaire.AnswerRepository
}

// NewService wires the questionnaire service.
func NewService(questions questionnaire.QuestionRepository, answers questionnaire.AnswerRepository) *Service {
	return &Service{questions: questions, answers: answers}
}

// ListQuestions returns the question bank, optionally narrowed by category.
func (s *Service) ListQuestions(ctx context.Context, category string) ([]questionnaire.Question, error) {
	return s.questions.ListQuestions(ctx, category)
}

// GetQuestion returns one question by ID.
func (s *Service) GetQuestion(ctx context.Context, id int64) (*questionnaire.Question, error) {
	return s.questions.FindQuestion(ctx, id)
}

// CountQuestions returns the size of the question bank.
func (s *Service) CountQuestions(ctx context.Context) (int64, error) {
	return s.questions.CountQuestions(ctx)
}

// Categories returns the question bank grouped into the category shape the
// interview categorizer consumes.
func (s *Service) Categories(ctx context.Context) (map[string]any, error) {
	questions, err := s.questions.ListQuestions(ctx, "")
	if err != nil {
		return nil, err
	}
	return questionnaire.CategoryMap(questions), nil
}

// Answer records a case's answer to one question. Re-answering overwrites
// the previous value.
func (s *Service) Answer(ctx context.Context, caseID kernel.CaseID, questionID int64, value string) (*questionnaire.Answer, error) {
	if strings.TrimSpace(value) == "" {
		return nil, questionnaire.ErrInvalidAnswer().WithDetail("reason", "empty value")
	}
	if _, err := s.questions.FindQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	return s.answers.UpsertAnswer(ctx, questionnaire.Answer{
		CaseID:     caseID,
		QuestionID: questionID,
		Value:      value,
	})
}

// ListAnswers returns every answer recorded for one case.
func (s *Service) ListAnswers(ctx context.Context, caseID kernel.CaseID) ([]questionnaire.Answer, error) {
	return s.answers.ListAnswers(ctx, caseID)
}
