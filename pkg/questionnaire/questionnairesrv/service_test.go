package questionnairesrv_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/questionnaire"
	"github.com/casedesk/casedesk/pkg/questionnaire/questionnairesrv"
)

// fakeBank is an in-memory question bank with per-case answers.
type fakeBank struct {
	questions []questionnaire.Question
	answers   map[string]questionnaire.Answer
	nextID    int64
}

func newFakeBank(questions ...questionnaire.Question) *fakeBank {
	return &fakeBank{
		questions: questions,
		answers:   make(map[string]questionnaire.Answer),
		nextID:    1,
	}
}

func (b *fakeBank) ListQuestions(_ context.Context, category string) ([]questionnaire.Question, error) {
	if category == "" {
		return b.questions, nil
	}
	out := []questionnaire.Question{}
	for _, q := range b.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (b *fakeBank) FindQuestion(_ context.Context, id int64) (*questionnaire.Question, error) {
	for _, q := range b.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, questionnaire.ErrQuestionNotFound()
}

func (b *fakeBank) CountQuestions(_ context.Context) (int64, error) {
	return int64(len(b.questions)), nil
}

func (b *fakeBank) UpsertAnswer(_ context.Context, answer questionnaire.Answer) (*questionnaire.Answer, error) {
	key := answerKey(answer.CaseID, answer.QuestionID)
	if existing, ok := b.answers[key]; ok {
		answer.ID = existing.ID
	} else {
		answer.ID = b.nextID
		b.nextID++
	}
	answer.UpdatedAt = time.Now()
	b.answers[key] = answer
	return &answer, nil
}

func (b *fakeBank) ListAnswers(_ context.Context, caseID kernel.CaseID) ([]questionnaire.Answer, error) {
	out := []questionnaire.Answer{}
	for _, a := range b.answers {
		if a.CaseID == caseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func answerKey(caseID kernel.CaseID, questionID int64) string {
	return fmt.Sprintf("%d:%d", caseID.Int64(), questionID)
}

var bankQuestions = []questionnaire.Question{
	{ID: 1, Category: "資産状況", FieldName: "total_assets", QuestionText: "総資産はいくらですか"},
	{ID: 2, Category: "家族構成", FieldName: "heirs", QuestionText: "相続人は誰ですか"},
}

func TestAnswerUpsertsByQuestion(t *testing.T) {
	bank := newFakeBank(bankQuestions...)
	svc := questionnairesrv.NewService(bank, bank)
	caseID := kernel.NewCaseID(7)

	first, err := svc.Answer(context.Background(), caseID, 1, "3000万円")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	second, err := svc.Answer(context.Background(), caseID, 1, "5000万円")
	if err != nil {
		t.Fatalf("re-answer: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-answer created a new row: %d != %d", second.ID, first.ID)
	}
	if second.Value != "5000万円" {
		t.Fatalf("unexpected value %q", second.Value)
	}

	answers, err := svc.ListAnswers(context.Background(), caseID)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
}

func TestAnswerRejectsUnknownQuestion(t *testing.T) {
	bank := newFakeBank(bankQuestions...)
	svc := questionnairesrv.NewService(bank, bank)

	_, err := svc.Answer(context.Background(), kernel.NewCaseID(7), 99, "なし")
	if err == nil {
		t.Fatal("expected error for unknown question")
	}
	var xerr *errx.Error
	if !errx.As(err, &xerr) || xerr.Type != errx.TypeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAnswerRejectsEmptyValue(t *testing.T) {
	bank := newFakeBank(bankQuestions...)
	svc := questionnairesrv.NewService(bank, bank)

	if _, err := svc.Answer(context.Background(), kernel.NewCaseID(7), 1, "   "); err == nil {
		t.Fatal("expected error for blank value")
	}
}

func TestCategoriesShape(t *testing.T) {
	bank := newFakeBank(bankQuestions...)
	svc := questionnairesrv.NewService(bank, bank)

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if _, ok := categories["資産状況"]; !ok {
		t.Fatal("missing 資産状況 category")
	}
}
