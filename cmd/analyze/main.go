// Package main provides the one-shot slate analysis CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/logger"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		slatePath  = flag.String("slate", "", "Path to a resolved slate bundle (JSON)")
		date       = flag.String("date", "", "Slate date to fetch from the feed (YYYY-MM-DD)")
		output     = flag.String("output", "", "Output path for results JSON (default stdout)")
	)
	flag.Parse()

	appLog := newLogger()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		appLog.Fatalf("Invalid configuration: %v", err)
	}

	slate, err := loadSlate(cfg, *slatePath, *date, appLog)
	if err != nil {
		appLog.Fatalf("Failed to load slate: %v", err)
	}
	if len(slate.Games) == 0 {
		appLog.Fatal("Slate contains no games")
	}

	analysisService := service.NewAnalysisService(cfg, nil, appLog)
	results := analysisService.AnalyzeSlate(slate.Games)

	if err := writeResults(results, *output); err != nil {
		appLog.Fatalf("Failed to write results: %v", err)
	}

	actionable := 0
	for _, result := range results {
		if result.Recommendation.Units > 0 {
			actionable++
		}
	}
	appLog.WithFields(logrus.Fields{
		"games":      len(results),
		"actionable": actionable,
	}).Info("Slate analysis complete")
}

func newLogger() *logrus.Logger {
	appLog := logger.NewLogger("info")
	// Results go to stdout; keep log lines off it.
	appLog.SetOutput(os.Stderr)
	return appLog
}

func loadSlate(cfg *config.Config, slatePath, date string, appLog *logrus.Logger) (*feed.Slate, error) {
	if slatePath != "" {
		return feed.LoadSlateFile(slatePath)
	}

	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	if cfg.Feed.BaseURL != "" {
		client := feed.NewClient(cfg.Feed, appLog)
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return client.FetchSlate(ctx, date)
	}

	if cfg.Scheduler.SlateBundleDir != "" {
		return feed.LoadSlateFile(filepath.Join(cfg.Scheduler.SlateBundleDir, date+".json"))
	}

	return nil, fmt.Errorf("no slate source: pass -slate, or configure a feed URL or bundle directory")
}

func writeResults(results []*models.AnalysisResult, output string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(output, data, 0o644)
}
