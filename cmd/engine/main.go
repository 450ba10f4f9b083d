// Package main provides the entry point for the court-vision engine daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/database"
	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/health"
	"github.com/yourusername/court-vision/internal/logger"
	"github.com/yourusername/court-vision/internal/repository"
	"github.com/yourusername/court-vision/internal/scheduler"
	"github.com/yourusername/court-vision/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		cfg    *config.Config
		err    error
		appLog *logrus.Logger
		db     *database.DB
	)

	// Load configuration
	cfg, err = config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog = logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"calibration": cfg.Engine.CalibrationVersion,
	}).Info("Court Vision engine starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the rating journal. Without a database the engine keeps
	// Elo history in memory only.
	var journal repository.RatingJournal
	if cfg.Database.JournalEnabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		journal, err = repository.NewPostgresRatingJournal(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize rating journal")
		}
		appLog.Info("Rating journal connected")
	} else {
		appLog.Info("Rating journal disabled; ratings are in-memory only")
	}

	// Create the analysis service and replay journaled ratings
	analysisService := service.NewAnalysisService(cfg, journal, appLog)
	if err := analysisService.Restore(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to restore rating state")
	}

	// Slate feed is optional; the scheduler falls back to local bundles
	var feedClient *feed.Client
	if cfg.Feed.BaseURL != "" {
		feedClient = feed.NewClient(cfg.Feed, appLog)
		defer feedClient.Close()
		appLog.WithField("feed_url", cfg.Feed.BaseURL).Info("Slate feed client initialized")
	}

	// Schedule recurring slate analysis
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(analysisService, feedClient, cfg.Scheduler, appLog)
		if err := sched.ScheduleSlateAnalysis(cfg.Scheduler.SlateCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule slate analysis")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("cron", cfg.Scheduler.SlateCron).Info("Slate scheduler started")
	} else {
		appLog.Info("Scheduler disabled")
	}

	// Health and metrics server
	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
	}
	if cfg.Metrics.Enabled {
		healthCfg.Port = fmt.Sprintf("%d", cfg.Metrics.Port)
	}
	if db != nil {
		healthCfg.DB = db
	}
	if sched != nil {
		healthCfg.Scheduler = sched
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"scheduler_enabled": cfg.Scheduler.Enabled,
		"journal_enabled":   cfg.Database.JournalEnabled,
		"version":           Version,
	}).Info("Engine is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error during scheduler shutdown")
		}
	}

	// Give components time to cleanup
	time.Sleep(2 * time.Second)

	appLog.Info("Court Vision engine shut down successfully")
}
