package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// Institution is a supervised financial institution. Score and RiskLevel
// are derived fields maintained by the recalculation pipeline; they are
// never edited directly.
type Institution struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Sector          string             `json:"sector"`
	Address         string             `json:"address,omitempty"`
	EmployeeCount   *int               `json:"employee_count,omitempty"`
	AnnualRevenue   *float64           `json:"annual_revenue,omitempty"`
	Score           *float64           `json:"score,omitempty"`
	RiskLevel       *scoring.RiskLevel `json:"risk_level,omitempty"`
	LastAssessment  *time.Time         `json:"last_assessment,omitempty"`
	NextSupervision *time.Time         `json:"next_supervision,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CreateInstitutionRequest is the payload for registering an institution.
type CreateInstitutionRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=255"`
	Sector        string   `json:"sector" binding:"required,min=2,max=100"`
	Address       string   `json:"address" binding:"omitempty,max=500"`
	EmployeeCount *int     `json:"employee_count" binding:"omitempty,min=0"`
	AnnualRevenue *float64 `json:"annual_revenue" binding:"omitempty,min=0"`
}

// UpdateInstitutionRequest is the payload for editing an institution.
type UpdateInstitutionRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=2,max=255"`
	Sector        string   `json:"sector" binding:"omitempty,min=2,max=100"`
	Address       *string  `json:"address" binding:"omitempty,max=500"`
	EmployeeCount *int     `json:"employee_count" binding:"omitempty,min=0"`
	AnnualRevenue *float64 `json:"annual_revenue" binding:"omitempty,min=0"`
}
