package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/clients/feed"
	"github.com/aristath/finsight/internal/config"
	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/insights"
	"github.com/aristath/finsight/internal/modules/kpi"
	kpijobs "github.com/aristath/finsight/internal/modules/kpi/jobs"
	"github.com/aristath/finsight/internal/modules/ratios"
	"github.com/aristath/finsight/internal/modules/valuation"
	"github.com/aristath/finsight/internal/scheduler"
	"github.com/aristath/finsight/internal/server"
	"github.com/aristath/finsight/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting FinSight")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Create tables
	if err := companies.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize companies schema")
	}
	if err := kpi.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize KPI schema")
	}

	// Repositories
	companiesRepo := companies.NewRepository(db.Conn(), log)
	kpiRepo := kpi.NewRepository(db.Conn(), log)

	// Feed client and ingestion service
	feedClient := feed.NewClient(cfg.FeedURL, log)
	kpiService := kpi.NewService(feedClient, kpiRepo, companiesRepo, log)

	// Analysis engines
	ratioEngine := ratios.NewEngine()
	insightsService := insights.NewService(kpiRepo, companiesRepo, log)
	valuationEngine := valuation.NewEngine(log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Register background jobs
	if err := registerJobs(sched, db, kpiService, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:   cfg.Port,
		Log:    log,
		DB:     db,
		Config: cfg,
		Handlers: server.Handlers{
			Companies: companies.NewHandlers(companiesRepo, log),
			KPI:       kpi.NewHandlers(kpiRepo, kpiService, log),
			Ratios:    ratios.NewHandlers(ratioEngine, kpiRepo, log),
			Insights:  insights.NewHandlers(insightsService, log),
			Valuation: valuation.NewHandlers(valuationEngine, kpiRepo, log),
		},
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, db *database.DB, kpiService *kpi.Service, cfg *config.Config, log zerolog.Logger) error {
	// Database integrity check every 6 hours
	if err := sched.AddJob("@every 6h", scheduler.NewHealthCheckJob(db, log)); err != nil {
		return err
	}

	// Feed refresh runs only when an upstream feed is configured
	if cfg.FeedURL != "" {
		job := kpijobs.NewFeedSyncJob(kpiService, domain.FrequencyQuarterly, log)
		if err := sched.AddJob(cfg.FeedSyncSchedule, job); err != nil {
			return err
		}
	}

	return nil
}
