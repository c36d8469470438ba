package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// InstitutionRepository handles institution data access.
type InstitutionRepository struct {
	pool *pgxpool.Pool
}

// NewInstitutionRepository creates a new InstitutionRepository.
func NewInstitutionRepository(pool *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{pool: pool}
}

// GetByID retrieves an institution by its UUID.
func (r *InstitutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Institution, error) {
	i := &model.Institution{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, sector, address, employee_count, annual_revenue,
		        score, risk_level, last_assessment, next_supervision, created_at, updated_at
		 FROM institutions WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.Sector, &i.Address, &i.EmployeeCount, &i.AnnualRevenue,
		&i.Score, &i.RiskLevel, &i.LastAssessment, &i.NextSupervision, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// ListPaginated retrieves institutions with optional sector and risk filters.
func (r *InstitutionRepository) ListPaginated(ctx context.Context, page, perPage int, sector *string, riskLevel *scoring.RiskLevel) ([]model.Institution, int64, error) {
	offset := (page - 1) * perPage

	baseQuery := ` FROM institutions WHERE 1=1`
	args := []any{}

	if sector != nil && *sector != "" {
		args = append(args, *sector)
		baseQuery += fmt.Sprintf(" AND sector = $%d", len(args))
	}
	if riskLevel != nil {
		args = append(args, *riskLevel)
		baseQuery += fmt.Sprintf(" AND risk_level = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, sector, address, employee_count, annual_revenue,
	                 score, risk_level, last_assessment, next_supervision, created_at, updated_at` +
		baseQuery + ` ORDER BY name ASC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, perPage, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var institutions []model.Institution
	for rows.Next() {
		var i model.Institution
		if err := rows.Scan(&i.ID, &i.Name, &i.Sector, &i.Address, &i.EmployeeCount, &i.AnnualRevenue,
			&i.Score, &i.RiskLevel, &i.LastAssessment, &i.NextSupervision, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, 0, err
		}
		institutions = append(institutions, i)
	}
	if institutions == nil {
		institutions = []model.Institution{}
	}
	return institutions, total, rows.Err()
}

// Create inserts a new institution.
func (r *InstitutionRepository) Create(ctx context.Context, i *model.Institution) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO institutions (name, sector, address, employee_count, annual_revenue)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		i.Name, i.Sector, i.Address, i.EmployeeCount, i.AnnualRevenue,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

// Update modifies an institution's descriptive fields.
func (r *InstitutionRepository) Update(ctx context.Context, i *model.Institution) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE institutions
		 SET name = $1, sector = $2, address = $3, employee_count = $4, annual_revenue = $5, updated_at = NOW()
		 WHERE id = $6`,
		i.Name, i.Sector, i.Address, i.EmployeeCount, i.AnnualRevenue, i.ID)
	return err
}

// UpdateScore records the outcome of a recalculation: the weighted total,
// the classification and the supervision dates.
func (r *InstitutionRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64, level scoring.RiskLevel, lastAssessment, nextSupervision time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE institutions
		 SET score = $1, risk_level = $2, last_assessment = $3, next_supervision = $4, updated_at = NOW()
		 WHERE id = $5`,
		score, level, lastAssessment, nextSupervision, id)
	return err
}

// UpdateLiveScore refreshes the running score and classification without
// touching the supervision dates. Used between submissions while answers
// are still being edited.
func (r *InstitutionRepository) UpdateLiveScore(ctx context.Context, id uuid.UUID, score float64, level scoring.RiskLevel) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE institutions SET score = $1, risk_level = $2, updated_at = NOW()
		 WHERE id = $3`,
		score, level, id)
	return err
}

// Delete removes an institution.
func (r *InstitutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	return err
}
