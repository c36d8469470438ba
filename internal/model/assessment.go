package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// Assessment is a frozen snapshot taken when an institution submits its
// questionnaire: the weighted total, the per-axis subtotals and the risk
// classification at that instant. History screens read these snapshots.
type Assessment struct {
	ID            uuid.UUID          `json:"id"`
	InstitutionID uuid.UUID          `json:"institution_id"`
	TotalScore    float64            `json:"total_score"`
	AxisScores    map[string]float64 `json:"axis_scores"`
	RiskLevel     scoring.RiskLevel  `json:"risk_level"`
	RiskLabel     string             `json:"risk_label"`
	SubmittedAt   time.Time          `json:"submitted_at"`
}

// AxisScore is the live (unfrozen) aggregate of one axis, served while the
// form is still open.
type AxisScore struct {
	SubSectionID uuid.UUID             `json:"sub_section_id"`
	Label        string                `json:"label"`
	Subtotal     float64               `json:"subtotal"`
	Answered     int                   `json:"answered"`
	Scored       int                   `json:"scored"`
	Questions    int                   `json:"questions"`
	IsComplete   bool                  `json:"is_complete"`
	Residuals    map[uuid.UUID]float64 `json:"residuals,omitempty"`
	Unscored     []uuid.UUID           `json:"unscored,omitempty"`
}

// QuestionScore is the per-question scoring detail returned to the form UI
// for risk coloring.
type QuestionScore struct {
	QuestionID   uuid.UUID          `json:"question_id"`
	Scored       bool               `json:"scored"`
	Model        scoring.ScoreModel `json:"model,omitempty"`
	Points       *float64           `json:"points,omitempty"`
	NoteRI       *float64           `json:"note_ri,omitempty"`
	NoteSC       *float64           `json:"note_sc,omitempty"`
	ResidualRisk *float64           `json:"residual_risk,omitempty"`
}
