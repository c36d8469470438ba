package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// AnswerRepository handles answer data access. One row per
// (institution, question) pair; saving again replaces the value.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// ListByInstitution retrieves all of an institution's answers.
func (r *AnswerRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, institution_id, question_id, value, justification, comment, submitted_at, updated_at
		 FROM answers WHERE institution_id = $1`, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.InstitutionID, &a.QuestionID, &a.Value, &a.Justification, &a.Comment, &a.SubmittedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// Upsert saves or replaces one answer.
func (r *AnswerRepository) Upsert(ctx context.Context, a *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (institution_id, question_id, value, justification, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (institution_id, question_id)
		 DO UPDATE SET value = EXCLUDED.value,
		               justification = EXCLUDED.justification,
		               comment = EXCLUDED.comment,
		               updated_at = NOW()
		 RETURNING id, updated_at`,
		a.InstitutionID, a.QuestionID, a.Value, a.Justification, a.Comment,
	).Scan(&a.ID, &a.UpdatedAt)
}

// BulkUpsert flushes a batch of autosaved answers in one statement using
// UNNEST. Values arrive as raw JSON text and are cast server-side.
func (r *AnswerRepository) BulkUpsert(ctx context.Context, answers []model.Answer) error {
	n := len(answers)
	if n == 0 {
		return nil
	}

	institutions := make([]uuid.UUID, 0, n)
	questions := make([]uuid.UUID, 0, n)
	values := make([]string, 0, n)
	justifications := make([]string, 0, n)
	comments := make([]string, 0, n)

	for _, a := range answers {
		institutions = append(institutions, a.InstitutionID)
		questions = append(questions, a.QuestionID)
		values = append(values, string(a.Value))
		justifications = append(justifications, a.Justification)
		comments = append(comments, a.Comment)
	}

	query := `
		INSERT INTO answers (institution_id, question_id, value, justification, comment)
		SELECT u.institution_id, u.question_id, u.value::jsonb, u.justification, u.comment
		FROM UNNEST(
			$1::uuid[],
			$2::uuid[],
			$3::text[],
			$4::text[],
			$5::text[]
		) AS u (institution_id, question_id, value, justification, comment)
		ON CONFLICT (institution_id, question_id)
		DO UPDATE SET value = EXCLUDED.value,
		              justification = EXCLUDED.justification,
		              comment = EXCLUDED.comment,
		              updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, institutions, questions, values, justifications, comments)
	return err
}

// MarkSubmitted freezes an institution's answers at submission time.
func (r *AnswerRepository) MarkSubmitted(ctx context.Context, institutionID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answers SET submitted_at = $1 WHERE institution_id = $2`,
		at, institutionID)
	return err
}
