package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	AnswerBatchSize    = 50
	AnswerBatchTimeout = 2 * time.Second
	AnswerPollTimeout  = 1 * time.Second
)

// AnswerWorker drains the autosave queue into PostgreSQL in batches and
// queues a score recalculation for every touched institution.
type AnswerWorker struct {
	answerRepo *repository.AnswerRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewAnswerWorker creates a new AnswerWorker.
func NewAnswerWorker(answerRepo *repository.AnswerRepository, rdb *redis.Client, log zerolog.Logger) *AnswerWorker {
	return &AnswerWorker{
		answerRepo: answerRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "answer_worker").Logger(),
	}
}

// Start begins the worker loop with batching. Call in a goroutine.
func (w *AnswerWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AnswerWorker started")

	batch := make([]service.AnswerPayload, 0, AnswerBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= AnswerBatchSize || time.Since(lastFlush) >= AnswerBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, AnswerPollTimeout, config.WorkerKey.PersistAnswersQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p service.AnswerPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, p)
		}
	}
}

func (w *AnswerWorker) flushSafe(ctx context.Context, batch []service.AnswerPayload) {
	if len(batch) == 0 {
		return
	}

	// Later writes to the same question win, so collapse the batch before
	// hitting Postgres: the UNNEST upsert must not see the same
	// (institution, question) pair twice.
	latest := make(map[[2]uuid.UUID]service.AnswerPayload, len(batch))
	for _, p := range batch {
		latest[[2]uuid.UUID{p.InstitutionID, p.QuestionID}] = p
	}

	answers := make([]model.Answer, 0, len(latest))
	institutions := make(map[uuid.UUID]bool)
	for _, p := range latest {
		answers = append(answers, model.Answer{
			InstitutionID: p.InstitutionID,
			QuestionID:    p.QuestionID,
			Value:         p.Value,
			Justification: p.Justification,
			Comment:       p.Comment,
		})
		institutions[p.InstitutionID] = true
	}

	if err := w.answerRepo.BulkUpsert(ctx, answers); err != nil {
		w.log.Warn().Err(err).Msg("Bulk upsert failed, requeueing batch")
		for _, p := range latest {
			raw, _ := json.Marshal(p)
			w.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, raw)
		}
		time.Sleep(5 * time.Second)
		return
	}

	// Every touched institution gets one recalculation.
	for institutionID := range institutions {
		raw, _ := json.Marshal(service.RecalcPayload{InstitutionID: institutionID})
		w.rdb.RPush(ctx, config.WorkerKey.RecalcScoresQueue, raw)
	}

	w.log.Debug().Int("count", len(answers)).Msg("Flushed answers")
}
