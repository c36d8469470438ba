package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/database"
	"github.com/mioraralevason/suivi-backend/internal/handler"
	"github.com/mioraralevason/suivi-backend/internal/logger"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/router"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
	"github.com/mioraralevason/suivi-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Suivi Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	institutionRepo := repository.NewInstitutionRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	ruleRepo := repository.NewRuleRepository(pool)
	thresholdRepo := repository.NewThresholdRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	countryRepo := repository.NewCountryRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	institutionService := service.NewInstitutionService(institutionRepo)
	questionService := service.NewQuestionService(questionRepo, sectionRepo, rdb)
	ruleService := service.NewRuleService(ruleRepo, questionRepo, rdb)
	thresholdService := service.NewThresholdService(thresholdRepo, rdb)
	assessmentService := service.NewAssessmentService(
		answerRepo, questionRepo, sectionRepo, ruleRepo,
		institutionRepo, assessmentRepo, thresholdService, rdb,
	)
	dashboardService := service.NewDashboardService(dashboardRepo)
	countryService := service.NewCountryService(countryRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(userService),
		Assessment:  handler.NewAssessmentHandler(assessmentService),
		Institution: handler.NewInstitutionHandler(institutionService, assessmentService),
		Country:     handler.NewCountryHandler(countryService),
		Section:     handler.NewSectionHandler(questionService),
		Question:    handler.NewQuestionHandler(questionService),
		Rule:        handler.NewRuleHandler(ruleService),
		Threshold:   handler.NewThresholdHandler(thresholdService),
		User:        handler.NewUserHandler(userService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		System:      handler.NewSystemHandler(pool, rdb, log),
		WS:          handler.NewWSHandler(rdb, assessmentService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	answerWorker := worker.NewAnswerWorker(answerRepo, rdb, log)
	recalcWorker := worker.NewRecalcWorker(assessmentService, rdb, log)

	go answerWorker.Start(workerCtx)
	go recalcWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
