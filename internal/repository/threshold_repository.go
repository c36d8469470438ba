package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// ThresholdRepository handles risk threshold data access.
type ThresholdRepository struct {
	pool *pgxpool.Pool
}

// NewThresholdRepository creates a new ThresholdRepository.
func NewThresholdRepository(pool *pgxpool.Pool) *ThresholdRepository {
	return &ThresholdRepository{pool: pool}
}

// List retrieves the active threshold set ordered by min_score.
func (r *ThresholdRepository) List(ctx context.Context) ([]model.RiskThreshold, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, level, label, min_score, max_score, supervision_period, created_at, updated_at
		 FROM risk_thresholds ORDER BY min_score`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thresholds []model.RiskThreshold
	for rows.Next() {
		var t model.RiskThreshold
		if err := rows.Scan(&t.ID, &t.Level, &t.Label, &t.MinScore, &t.MaxScore, &t.SupervisionPeriod, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		thresholds = append(thresholds, t)
	}
	if thresholds == nil {
		thresholds = []model.RiskThreshold{}
	}
	return thresholds, rows.Err()
}

// Replace swaps the whole threshold set atomically. The caller validates
// the bands before they get here; a partially written set must never be
// observable.
func (r *ThresholdRepository) Replace(ctx context.Context, bands []scoring.Threshold) ([]model.RiskThreshold, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM risk_thresholds`); err != nil {
		return nil, err
	}

	saved := make([]model.RiskThreshold, len(bands))
	for i, b := range bands {
		t := model.RiskThreshold{Threshold: b}
		if err := tx.QueryRow(ctx,
			`INSERT INTO risk_thresholds (level, label, min_score, max_score, supervision_period)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at, updated_at`,
			b.Level, b.Label, b.MinScore, b.MaxScore, b.SupervisionPeriod,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		saved[i] = t
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}
