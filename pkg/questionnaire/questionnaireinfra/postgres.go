package questionnaireinfra

import (
	"context"
	"database/sql"

	"github.com/casedesk/casedesk/pkg/errx"
	"github.com/casedesk/casedesk/pkg/kernel"
	"github.com/casedesk/casedesk/pkg/questionnaire"
	"github.com/jmoiron/sqlx"
)

// PostgresQuestionnaireRepository implements both questionnaire ports over
// PostgreSQL.
type PostgresQuestionnaireRepository struct {
	db *sqlx.DB
}

// NewPostgresQuestionnaireRepository creates a new repository instance.
func NewPostgresQuestionnaireRepository(db *sqlx.DB) *PostgresQuestionnaireRepository {
	return &PostgresQuestionnaireRepository{db: db}
}

// ListQuestions returns the question bank, optionally narrowed by category,
// in bank order.
func (r *PostgresQuestionnaireRepository) ListQuestions(ctx context.Context, category string) ([]questionnaire.Question, error) {
	query := `SELECT * FROM questions`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	questions := []questionnaire.Question{}
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list questions", errx.TypeInternal)
	}
	return questions, nil
}

// FindQuestion returns one question by ID.
func (r *PostgresQuestionnaireRepository) FindQuestion(ctx context.Context, id int64) (*questionnaire.Question, error) {
	var q questionnaire.Question
	err := r.db.GetContext(ctx, &q, `SELECT * FROM questions WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, questionnaire.ErrQuestionNotFound().WithDetail("id", id)
		}
		return nil, errx.Wrap(err, "failed to find question", errx.TypeInternal).
			WithDetail("id", id)
	}
	return &q, nil
}

// CountQuestions returns the size of the question bank.
func (r *PostgresQuestionnaireRepository) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, errx.Wrap(err, "failed to count questions", errx.TypeInternal)
	}
	return count, nil
}

// UpsertAnswer writes an answer, overwriting any previous answer the case
// gave to the same question.
func (r *PostgresQuestionnaireRepository) UpsertAnswer(ctx context.Context, answer questionnaire.Answer) (*questionnaire.Answer, error) {
	query := `
		INSERT INTO answers (case_id, question_id, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (case_id, question_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING *`

	var saved questionnaire.Answer
	err := r.db.GetContext(ctx, &saved, query,
		answer.CaseID.Int64(), answer.QuestionID, answer.Value)
	if err != nil {
		return nil, errx.Wrap(err, "failed to upsert answer", errx.TypeInternal).
			WithDetail("case_id", answer.CaseID.Int64()).
			WithDetail("question_id", answer.QuestionID)
	}
	return &saved, nil
}

// ListAnswers returns all answers for one case.
func (r *PostgresQuestionnaireRepository) ListAnswers(ctx context.Context, caseID kernel.CaseID) ([]questionnaire.Answer, error) {
	answers := []questionnaire.Answer{}
	query := `SELECT * FROM answers WHERE case_id = $1 ORDER BY question_id`
	if err := r.db.SelectContext(ctx, &answers, query, caseID.Int64()); err != nil {
		return nil, errx.Wrap(err, "failed to list answers", errx.TypeInternal).
			WithDetail("case_id", caseID.Int64())
	}
	return answers, nil
}
