package websocket

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAutosave Action = "autosave"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AutosaveRequest is sent by the client to save a single answer.
type AutosaveRequest struct {
	Action        Action          `json:"action"`
	QuestionID    uuid.UUID       `json:"question_id"`
	Value         json.RawMessage `json:"value"`
	Justification string          `json:"justification,omitempty"`
	Comment       string          `json:"comment,omitempty"`
}

// SubmitRequest is sent by the client to freeze the assessment.
type SubmitRequest struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventSuccess    Event = "success"
	EventGraded     Event = "graded"
	EventPong       Event = "pong"
	EventRiskUpdate Event = "risk_update"
)

type AutosaveResponse struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
}

// GradedResponse carries the classification back after a submission.
type GradedResponse struct {
	Event     Event             `json:"event"`
	Status    string            `json:"status"`
	Score     float64           `json:"score"`
	RiskLevel scoring.RiskLevel `json:"risk_level"`
	RiskLabel string            `json:"risk_label"`
}

// RiskUpdateResponse relays a score or classification change to
// dashboard subscribers.
type RiskUpdateResponse struct {
	Event         Event             `json:"event"`
	InstitutionID uuid.UUID         `json:"institution_id"`
	Score         float64           `json:"score"`
	RiskLevel     scoring.RiskLevel `json:"risk_level"`
	RiskLabel     string            `json:"risk_label"`
	Submitted     bool              `json:"submitted"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
