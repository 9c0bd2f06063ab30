package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/database"
	"github.com/conceptlens/conceptlens-backend/internal/handler"
	"github.com/conceptlens/conceptlens-backend/internal/logger"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
	"github.com/conceptlens/conceptlens-backend/internal/router"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
	"github.com/conceptlens/conceptlens-backend/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ConceptLens Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	misRepo := repository.NewMisconceptionRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	joinRepo := repository.NewJoinRequestRepository(pool)
	notifRepo := repository.NewNotificationRepository(pool)
	logRepo := repository.NewValidationLogRepository(pool)

	// Services.
	authService := service.NewAuthService(cfg, userRepo)
	notifService := service.NewNotificationService(notifRepo, rdb)
	classService := service.NewClassService(classRepo, joinRepo, userRepo, notifService)
	examService := service.NewExamService(examRepo, responseRepo, classRepo, userRepo)
	misService := service.NewMisconceptionService(misRepo, examRepo, responseRepo, logRepo)
	reportService := service.NewReportService(misRepo, examRepo, responseRepo, cfg, rdb)

	// Handlers.
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Analytics:     handler.NewAnalyticsHandler(reportService),
		Misconception: handler.NewMisconceptionHandler(misService),
		Exam:          handler.NewExamHandler(examService),
		Class:         handler.NewClassHandler(classService, authService),
		StudentPortal: handler.NewStudentPortalHandler(examService),
		Notification:  handler.NewNotificationHandler(notifService),
		WS:            handler.NewWSHandler(rdb, notifService, cfg.AllowedOrigins),
	}

	// Background workers.
	workerCtx, workerCancel := context.WithCancel(context.Background())

	statsWorker := worker.NewStatsWorker(reportService, cfg.StatsRefreshInterval)
	go statsWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
