package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// RuleRepository handles scoring rule data access. Rule order is the
// position column; every read returns rules in that order because the
// order decides which rule wins.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

// GetByID retrieves a rule by its UUID.
func (r *RuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScoringRule, error) {
	sr := &model.ScoringRule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_id, position, condition, points, note_ri, note_sc, created_at, updated_at
		 FROM scoring_rules WHERE id = $1`, id,
	).Scan(&sr.ID, &sr.QuestionID, &sr.Position, &sr.Condition, &sr.Points, &sr.NoteRI, &sr.NoteSC, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sr, nil
}

// ListByQuestion retrieves a question's rules in evaluation order.
func (r *RuleRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.ScoringRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, position, condition, points, note_ri, note_sc, created_at, updated_at
		 FROM scoring_rules WHERE question_id = $1
		 ORDER BY position`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.ScoringRule
	for rows.Next() {
		var sr model.ScoringRule
		if err := rows.Scan(&sr.ID, &sr.QuestionID, &sr.Position, &sr.Condition, &sr.Points, &sr.NoteRI, &sr.NoteSC, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, sr)
	}
	if rules == nil {
		rules = []model.ScoringRule{}
	}
	return rules, rows.Err()
}

// ListAll retrieves every rule grouped by question, each group in
// evaluation order. Used by the recalculation pipeline.
func (r *RuleRepository) ListAll(ctx context.Context) (map[uuid.UUID][]model.ScoringRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, position, condition, points, note_ri, note_sc, created_at, updated_at
		 FROM scoring_rules ORDER BY question_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make(map[uuid.UUID][]model.ScoringRule)
	for rows.Next() {
		var sr model.ScoringRule
		if err := rows.Scan(&sr.ID, &sr.QuestionID, &sr.Position, &sr.Condition, &sr.Points, &sr.NoteRI, &sr.NoteSC, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, err
		}
		rules[sr.QuestionID] = append(rules[sr.QuestionID], sr)
	}
	return rules, rows.Err()
}

// Create inserts a rule at the end of its question's order.
func (r *RuleRepository) Create(ctx context.Context, sr *model.ScoringRule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO scoring_rules (question_id, position, condition, points, note_ri, note_sc)
		 VALUES ($1,
		         (SELECT COALESCE(MAX(position), -1) + 1 FROM scoring_rules WHERE question_id = $1),
		         $2, $3, $4, $5)
		 RETURNING id, position, created_at, updated_at`,
		sr.QuestionID, sr.Condition, sr.Points, sr.NoteRI, sr.NoteSC,
	).Scan(&sr.ID, &sr.Position, &sr.CreatedAt, &sr.UpdatedAt)
}

// Update modifies a rule's condition and outcome. Position is untouched;
// reordering is its own operation.
func (r *RuleRepository) Update(ctx context.Context, sr *model.ScoringRule) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE scoring_rules
		 SET condition = $1, points = $2, note_ri = $3, note_sc = $4, updated_at = NOW()
		 WHERE id = $5`,
		sr.Condition, sr.Points, sr.NoteRI, sr.NoteSC, sr.ID)
	return err
}

// Reorder rewrites the positions of a question's rules in one transaction.
// ruleIDs is the new order; index in the slice becomes the position.
func (r *RuleRepository) Reorder(ctx context.Context, questionID uuid.UUID, ruleIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for position, id := range ruleIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE scoring_rules SET position = $1, updated_at = NOW()
			 WHERE id = $2 AND question_id = $3`,
			position, id, questionID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}
	return tx.Commit(ctx)
}

// Delete removes a rule and compacts the remaining positions.
func (r *RuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var questionID uuid.UUID
	var position int
	if err := tx.QueryRow(ctx,
		`DELETE FROM scoring_rules WHERE id = $1 RETURNING question_id, position`, id,
	).Scan(&questionID, &position); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE scoring_rules SET position = position - 1
		 WHERE question_id = $1 AND position > $2`,
		questionID, position); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
