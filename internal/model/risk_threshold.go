package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// RiskThreshold is one persisted classification band. The band semantics
// (level, label, score range, supervision period) live in the embedded
// engine type; this adds identity and timestamps.
type RiskThreshold struct {
	scoring.Threshold
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ThresholdInput is one band in a save request. The whole set is validated
// together: bands must be contiguous, non-overlapping and cover the full
// score domain, or the save is rejected.
type ThresholdInput struct {
	Level             string  `json:"level" binding:"required,oneof=low medium high"`
	Label             string  `json:"label" binding:"required,min=1,max=100"`
	MinScore          float64 `json:"min_score"`
	MaxScore          float64 `json:"max_score"`
	SupervisionPeriod string  `json:"supervision_period" binding:"required,max=50"`
}

// SaveThresholdsRequest replaces the threshold configuration atomically.
type SaveThresholdsRequest struct {
	Thresholds []ThresholdInput `json:"thresholds" binding:"required,min=1,dive"`
}

// Bands converts the request to engine thresholds for validation.
func (r *SaveThresholdsRequest) Bands() []scoring.Threshold {
	bands := make([]scoring.Threshold, len(r.Thresholds))
	for i, t := range r.Thresholds {
		bands[i] = scoring.Threshold{
			Level:             scoring.RiskLevel(t.Level),
			Label:             t.Label,
			MinScore:          t.MinScore,
			MaxScore:          t.MaxScore,
			SupervisionPeriod: t.SupervisionPeriod,
		}
	}
	return bands
}
