package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// ScoringRule is one persisted rule attached to a question. The condition
// is stored in its textual form and decoded through the codec at the
// storage boundary; evaluation only ever sees the decoded condition.
//
// A rule carries either Points (points model) or NoteRI/NoteSC
// (risk × control model). Position is the stable, persisted sequence
// index: rule order decides precedence and reordering is an explicit
// operation, never an accident of insertion order.
type ScoringRule struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Position   int       `json:"position"`
	Condition  string    `json:"condition"`
	Points     *float64  `json:"points,omitempty"`
	NoteRI     *float64  `json:"note_ri,omitempty"`
	NoteSC     *float64  `json:"note_sc,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Decode converts the stored rule into its evaluation form.
func (r *ScoringRule) Decode() (scoring.Rule, error) {
	cond, err := scoring.DecodeCondition(r.Condition)
	if err != nil {
		return scoring.Rule{}, err
	}

	rule := scoring.Rule{Condition: cond}
	if r.NoteRI != nil {
		rule.Model = scoring.ModelRiskControl
		rule.NoteRI = *r.NoteRI
		rule.NoteSC = r.NoteSC
	} else {
		rule.Model = scoring.ModelPoints
		if r.Points != nil {
			rule.Points = *r.Points
		}
	}
	return rule, nil
}

// CreateScoringRuleRequest is the payload for attaching a rule to a question.
// Exactly one scoring model must be supplied: points, or note_ri
// (optionally with note_sc).
type CreateScoringRuleRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Condition  string    `json:"condition" binding:"required,max=500"`
	Points     *float64  `json:"points" binding:"omitempty"`
	NoteRI     *float64  `json:"note_ri" binding:"omitempty,min=1,max=4"`
	NoteSC     *float64  `json:"note_sc" binding:"omitempty,min=1,max=4"`
}

// UpdateScoringRuleRequest is the payload for editing a rule.
type UpdateScoringRuleRequest struct {
	Condition string   `json:"condition" binding:"omitempty,max=500"`
	Points    *float64 `json:"points" binding:"omitempty"`
	NoteRI    *float64 `json:"note_ri" binding:"omitempty,min=1,max=4"`
	NoteSC    *float64 `json:"note_sc" binding:"omitempty,min=1,max=4"`
}

// ReorderScoringRulesRequest replaces the rule order for one question.
// It must list every rule id of the question exactly once.
type ReorderScoringRulesRequest struct {
	RuleIDs []uuid.UUID `json:"rule_ids" binding:"required,min=1"`
}
