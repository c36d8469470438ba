package service

import (
	"context"

	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
)

// ThresholdService handles risk threshold business logic.
type ThresholdService struct {
	thresholdRepo *repository.ThresholdRepository
	rdb           *redis.Client
}

// NewThresholdService creates a new ThresholdService.
func NewThresholdService(thresholdRepo *repository.ThresholdRepository, rdb *redis.Client) *ThresholdService {
	return &ThresholdService{thresholdRepo: thresholdRepo, rdb: rdb}
}

// List retrieves the active threshold set.
func (s *ThresholdService) List(ctx context.Context) ([]model.RiskThreshold, error) {
	return s.thresholdRepo.List(ctx)
}

// Bands retrieves the active set in the engine's shape, ready for
// classification.
func (s *ThresholdService) Bands(ctx context.Context) ([]scoring.Threshold, error) {
	thresholds, err := s.thresholdRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	bands := make([]scoring.Threshold, len(thresholds))
	for i, t := range thresholds {
		bands[i] = t.Threshold
	}
	return bands, nil
}

// Replace validates and swaps the whole threshold set. An invalid set
// (gap, overlap, wrong floor or ceiling, duplicated level) never reaches
// storage, so classification always sees a total configuration.
func (s *ThresholdService) Replace(ctx context.Context, bands []scoring.Threshold) ([]model.RiskThreshold, error) {
	if err := scoring.ValidateThresholds(bands); err != nil {
		return nil, err
	}
	saved, err := s.thresholdRepo.Replace(ctx, bands)
	if err != nil {
		return nil, err
	}
	_ = s.rdb.Del(ctx, config.CacheKey.ThresholdsKey()).Err()
	return saved, nil
}
