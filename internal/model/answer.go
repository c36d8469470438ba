package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Answer is one institution's recorded response to a question. Value holds
// the raw JSON payload whose shape is fixed by the question's type; it is
// parsed and validated at the boundary before anything touches it.
// Answers stay mutable while the assessment form is open and freeze when
// the assessment is submitted.
type Answer struct {
	ID            uuid.UUID       `json:"id"`
	InstitutionID uuid.UUID       `json:"institution_id"`
	QuestionID    uuid.UUID       `json:"question_id"`
	Value         json.RawMessage `json:"value"`
	Justification string          `json:"justification,omitempty"`
	Comment       string          `json:"comment,omitempty"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UpsertAnswerRequest saves or replaces the answer to one question.
type UpsertAnswerRequest struct {
	QuestionID    uuid.UUID       `json:"question_id" binding:"required"`
	Value         json.RawMessage `json:"value" binding:"required"`
	Justification string          `json:"justification" binding:"omitempty,max=2000"`
	Comment       string          `json:"comment" binding:"omitempty,max=2000"`
}
