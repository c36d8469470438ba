package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	RecalcBatchSize    = 20
	RecalcBatchTimeout = 2 * time.Second
	RecalcPollTimeout  = 1 * time.Second
)

// RecalcWorker consumes the recalculation queue, recomputes institution
// scores through the engine and publishes the resulting classification.
// Requests are deduplicated per batch: ten answer edits for one
// institution cost a single recomputation.
type RecalcWorker struct {
	assessmentService *service.AssessmentService
	rdb               *redis.Client
	log               zerolog.Logger
}

// NewRecalcWorker creates a new RecalcWorker.
func NewRecalcWorker(assessmentService *service.AssessmentService, rdb *redis.Client, log zerolog.Logger) *RecalcWorker {
	return &RecalcWorker{
		assessmentService: assessmentService,
		rdb:               rdb,
		log:               log.With().Str("component", "recalc_worker").Logger(),
	}
}

// Start begins the worker loop with batching. Call in a goroutine.
func (w *RecalcWorker) Start(ctx context.Context) {
	w.log.Info().Msg("RecalcWorker started")

	pending := make(map[uuid.UUID]bool, RecalcBatchSize)
	lastFlush := time.Now()

	for {
		if len(pending) > 0 &&
			(len(pending) >= RecalcBatchSize || time.Since(lastFlush) >= RecalcBatchTimeout) {

			w.flush(ctx, pending)
			pending = make(map[uuid.UUID]bool, RecalcBatchSize)
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining recalculations...")
			w.flush(context.Background(), pending)
			return

		default:
			item, err := w.rdb.BLPop(ctx, RecalcPollTimeout, config.WorkerKey.RecalcScoresQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p service.RecalcPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			pending[p.InstitutionID] = true
		}
	}
}

func (w *RecalcWorker) flush(ctx context.Context, pending map[uuid.UUID]bool) {
	for institutionID := range pending {
		event, err := w.assessmentService.Recalculate(ctx, institutionID)
		if err != nil {
			w.log.Error().Err(err).
				Str("institution_id", institutionID.String()).
				Msg("Recalculation failed, requeueing")
			raw, _ := json.Marshal(service.RecalcPayload{InstitutionID: institutionID})
			w.rdb.RPush(ctx, config.WorkerKey.RecalcScoresQueue, raw)
			continue
		}
		w.log.Debug().
			Str("institution_id", institutionID.String()).
			Float64("score", event.Score).
			Str("risk_level", string(event.RiskLevel)).
			Msg("Recalculated")
	}
}
