package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// AssessmentRepository handles assessment snapshot data access.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Create inserts an assessment snapshot.
func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assessments (institution_id, total_score, axis_scores, risk_level, risk_label)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, submitted_at`,
		a.InstitutionID, a.TotalScore, a.AxisScores, a.RiskLevel, a.RiskLabel,
	).Scan(&a.ID, &a.SubmittedAt)
}

// ListByInstitution retrieves an institution's assessment history, newest first.
func (r *AssessmentRepository) ListByInstitution(ctx context.Context, institutionID uuid.UUID) ([]model.Assessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, institution_id, total_score, axis_scores, risk_level, risk_label, submitted_at
		 FROM assessments WHERE institution_id = $1
		 ORDER BY submitted_at DESC`, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []model.Assessment
	for rows.Next() {
		var a model.Assessment
		if err := rows.Scan(&a.ID, &a.InstitutionID, &a.TotalScore, &a.AxisScores, &a.RiskLevel, &a.RiskLabel, &a.SubmittedAt); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	return assessments, rows.Err()
}

// GetLatest retrieves an institution's most recent snapshot, or pgx.ErrNoRows.
func (r *AssessmentRepository) GetLatest(ctx context.Context, institutionID uuid.UUID) (*model.Assessment, error) {
	a := &model.Assessment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, institution_id, total_score, axis_scores, risk_level, risk_label, submitted_at
		 FROM assessments WHERE institution_id = $1
		 ORDER BY submitted_at DESC LIMIT 1`, institutionID,
	).Scan(&a.ID, &a.InstitutionID, &a.TotalScore, &a.AxisScores, &a.RiskLevel, &a.RiskLabel, &a.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
