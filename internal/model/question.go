package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// Question represents one questionnaire question owned by a sub-section.
type Question struct {
	ID                    uuid.UUID            `json:"id"`
	SubSectionID          uuid.UUID            `json:"sub_section_id"`
	Label                 string               `json:"label"`
	Definition            string               `json:"definition,omitempty"`
	Type                  scoring.QuestionType `json:"type"`
	Required              bool                 `json:"required"`
	JustificationRequired bool                 `json:"justification_required"`
	CommentRequired       bool                 `json:"comment_required"`
	Min                   *float64             `json:"min,omitempty"`
	Max                   *float64             `json:"max,omitempty"`
	Options               []string             `json:"options,omitempty"`
	Position              int                  `json:"position"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// Spec converts the stored question to its evaluation-time view.
func (q *Question) Spec() scoring.Question {
	return scoring.Question{
		Type:                  q.Type,
		Required:              q.Required,
		JustificationRequired: q.JustificationRequired,
		CommentRequired:       q.CommentRequired,
		Min:                   q.Min,
		Max:                   q.Max,
		Options:               q.Options,
	}
}

// CreateQuestionRequest is the payload for creating a question.
type CreateQuestionRequest struct {
	SubSectionID          uuid.UUID `json:"sub_section_id" binding:"required"`
	Label                 string    `json:"label" binding:"required,min=3,max=500"`
	Definition            string    `json:"definition" binding:"omitempty,max=2000"`
	Type                  string    `json:"type" binding:"required,oneof=boolean single_choice multiple_choice range percentage integer decimal text_short text_long date date_range"`
	Required              bool      `json:"required"`
	JustificationRequired bool      `json:"justification_required"`
	CommentRequired       bool      `json:"comment_required"`
	Min                   *float64  `json:"min" binding:"omitempty"`
	Max                   *float64  `json:"max" binding:"omitempty"`
	Options               []string  `json:"options" binding:"omitempty,dive,min=1,max=255"`
	Position              int       `json:"position" binding:"min=0"`
}

// UpdateQuestionRequest is the payload for editing an existing question.
// The question type is immutable once answers reference it; changing the
// answer shape would orphan recorded values.
type UpdateQuestionRequest struct {
	Label                 string   `json:"label" binding:"omitempty,min=3,max=500"`
	Definition            *string  `json:"definition" binding:"omitempty,max=2000"`
	Required              *bool    `json:"required"`
	JustificationRequired *bool    `json:"justification_required"`
	CommentRequired       *bool    `json:"comment_required"`
	Min                   *float64 `json:"min"`
	Max                   *float64 `json:"max"`
	Options               []string `json:"options" binding:"omitempty,dive,min=1,max=255"`
	Position              *int     `json:"position" binding:"omitempty,min=0"`
}
