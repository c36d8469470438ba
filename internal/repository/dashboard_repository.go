package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// DashboardRepository handles supervision dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalInstitutions, assessedInstitutions, totalQuestions, totalAssessments int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM institutions),
			(SELECT COUNT(*) FROM institutions WHERE risk_level IS NOT NULL),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM assessments)`,
	).Scan(&totalInstitutions, &assessedInstitutions, &totalQuestions, &totalAssessments)
	return
}

// GetRiskLevelCounts retrieves the distribution of institutions by risk level.
func (r *DashboardRepository) GetRiskLevelCounts(ctx context.Context) (map[scoring.RiskLevel]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT risk_level, COUNT(*) FROM institutions
		 WHERE risk_level IS NOT NULL GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[scoring.RiskLevel]int)
	for rows.Next() {
		var level scoring.RiskLevel
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		counts[level] = count
	}
	return counts, rows.Err()
}

// DashboardSupervision is one entry on the upcoming supervision schedule.
type DashboardSupervision struct {
	InstitutionID   uuid.UUID          `json:"institution_id"`
	Name            string             `json:"name"`
	Sector          string             `json:"sector"`
	RiskLevel       *scoring.RiskLevel `json:"risk_level"`
	Score           *float64           `json:"score"`
	NextSupervision time.Time          `json:"next_supervision"`
}

// GetUpcomingSupervisions retrieves the next N institutions due for
// supervision, soonest first.
func (r *DashboardRepository) GetUpcomingSupervisions(ctx context.Context, limit int) ([]DashboardSupervision, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, sector, risk_level, score, next_supervision
		 FROM institutions
		 WHERE next_supervision IS NOT NULL
		 ORDER BY next_supervision ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedule []DashboardSupervision
	for rows.Next() {
		var s DashboardSupervision
		if err := rows.Scan(&s.InstitutionID, &s.Name, &s.Sector, &s.RiskLevel, &s.Score, &s.NextSupervision); err != nil {
			return nil, err
		}
		schedule = append(schedule, s)
	}
	if schedule == nil {
		schedule = []DashboardSupervision{}
	}
	return schedule, rows.Err()
}

// DashboardRecentAssessment is one row of the latest-submissions feed.
type DashboardRecentAssessment struct {
	AssessmentID    uuid.UUID         `json:"assessment_id"`
	InstitutionID   uuid.UUID         `json:"institution_id"`
	InstitutionName string            `json:"institution_name"`
	TotalScore      float64           `json:"total_score"`
	RiskLevel       scoring.RiskLevel `json:"risk_level"`
	SubmittedAt     time.Time         `json:"submitted_at"`
}

// GetRecentAssessments retrieves the last N submitted assessments.
func (r *DashboardRepository) GetRecentAssessments(ctx context.Context, limit int) ([]DashboardRecentAssessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.institution_id, i.name, a.total_score, a.risk_level, a.submitted_at
		 FROM assessments a
		 JOIN institutions i ON a.institution_id = i.id
		 ORDER BY a.submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DashboardRecentAssessment
	for rows.Next() {
		var a DashboardRecentAssessment
		if err := rows.Scan(&a.AssessmentID, &a.InstitutionID, &a.InstitutionName, &a.TotalScore, &a.RiskLevel, &a.SubmittedAt); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	if results == nil {
		results = []DashboardRecentAssessment{}
	}
	return results, rows.Err()
}

// GetAverageScoreBySector retrieves the mean score per sector for assessed
// institutions.
func (r *DashboardRepository) GetAverageScoreBySector(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sector, AVG(score) FROM institutions
		 WHERE score IS NOT NULL GROUP BY sector`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var sector string
		var avg float64
		if err := rows.Scan(&sector, &avg); err != nil {
			return nil, err
		}
		averages[sector] = avg
	}
	return averages, rows.Err()
}
