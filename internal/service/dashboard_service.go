package service

import (
	"context"

	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// DashboardData consolidates all metrics for the supervision dashboard.
type DashboardData struct {
	TotalInstitutions    int                                    `json:"total_institutions"`
	AssessedInstitutions int                                    `json:"assessed_institutions"`
	TotalQuestions       int                                    `json:"total_questions"`
	TotalAssessments     int                                    `json:"total_assessments"`
	RiskLevelCounts      map[scoring.RiskLevel]int              `json:"risk_level_counts"`
	UpcomingSupervisions []repository.DashboardSupervision      `json:"upcoming_supervisions"`
	RecentAssessments    []repository.DashboardRecentAssessment `json:"recent_assessments"`
	SectorAverages       map[string]float64                     `json:"sector_averages"`
}

// DashboardService handles supervision dashboard business logic.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetDashboardData orchestrates fetching all dashboard metrics.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	institutions, assessed, questions, assessments, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	riskCounts, err := s.repo.GetRiskLevelCounts(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repo.GetUpcomingSupervisions(ctx, 5)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetRecentAssessments(ctx, 5)
	if err != nil {
		return nil, err
	}

	averages, err := s.repo.GetAverageScoreBySector(ctx)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		TotalInstitutions:    institutions,
		AssessedInstitutions: assessed,
		TotalQuestions:       questions,
		TotalAssessments:     assessments,
		RiskLevelCounts:      riskCounts,
		UpcomingSupervisions: upcoming,
		RecentAssessments:    recent,
		SectorAverages:       averages,
	}

	return data, nil
}
