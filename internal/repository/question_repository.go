package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, sub_section_id, label, definition, type, required,
	justification_required, comment_required, min_value, max_value, options,
	position, created_at, updated_at`

func scanQuestion(row interface{ Scan(...any) error }, q *model.Question) error {
	return row.Scan(&q.ID, &q.SubSectionID, &q.Label, &q.Definition, &q.Type, &q.Required,
		&q.JustificationRequired, &q.CommentRequired, &q.Min, &q.Max, &q.Options,
		&q.Position, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id), q)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListBySubSection retrieves all questions of a sub-section, ordered by position.
func (r *QuestionRepository) ListBySubSection(ctx context.Context, subSectionID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE sub_section_id = $1 ORDER BY position`, subSectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListAll retrieves every question of the questionnaire, ordered by
// sub-section then position. Used to build the full form payload and by
// the recalculation pipeline.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY sub_section_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (sub_section_id, label, definition, type, required,
		     justification_required, comment_required, min_value, max_value, options, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		q.SubSectionID, q.Label, q.Definition, q.Type, q.Required,
		q.JustificationRequired, q.CommentRequired, q.Min, q.Max, q.Options, q.Position,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update modifies a question. The type column is deliberately not updatable.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET label = $1, definition = $2, required = $3, justification_required = $4,
		     comment_required = $5, min_value = $6, max_value = $7, options = $8,
		     position = $9, updated_at = NOW()
		 WHERE id = $10`,
		q.Label, q.Definition, q.Required, q.JustificationRequired,
		q.CommentRequired, q.Min, q.Max, q.Options, q.Position, q.ID)
	return err
}

// Delete removes a question and, through cascades, its rules and answers.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
