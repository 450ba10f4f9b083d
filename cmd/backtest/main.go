// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/court-vision/internal/backtest"
	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/logger"
	"github.com/yourusername/court-vision/internal/metrics"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		gamesPath  = flag.String("games", "", "Path to historical games bundle (overrides config)")
		output     = flag.String("output", "", "Output path for results JSON (overrides config)")
		bankroll   = flag.Float64("bankroll", 0, "Starting bankroll (overrides config)")
		unitSize   = flag.Float64("unit", 0, "Dollar size of one unit (overrides config)")
	)
	flag.Parse()

	appLog := logger.NewLogger("info")

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		appLog.Fatalf("Invalid configuration: %v", err)
	}

	btConfig := cfg.Backtest
	if *gamesPath != "" {
		btConfig.GamesPath = *gamesPath
	}
	if *output != "" {
		btConfig.OutputPath = *output
	}
	if *bankroll > 0 {
		btConfig.InitialBankroll = *bankroll
	}
	if *unitSize > 0 {
		btConfig.UnitSize = *unitSize
	}
	if btConfig.GamesPath == "" {
		appLog.Fatal("No games bundle: pass -games or set backtest.games_path")
	}

	slate, err := feed.LoadSlateFile(btConfig.GamesPath)
	if err != nil {
		appLog.Fatalf("Failed to load games bundle: %v", err)
	}

	appLog.WithFields(logrus.Fields{
		"games":    len(slate.Games),
		"bankroll": btConfig.InitialBankroll,
		"unit":     btConfig.UnitSize,
	}).Info("Starting backtest")

	harness := backtest.NewHarness(btConfig, &cfg.Engine, appLog)

	start := time.Now()
	summary, err := harness.Run(slate.Games)
	if err != nil {
		appLog.Fatalf("Backtest failed: %v", err)
	}
	endingBankroll, _ := summary.EndingBankroll.Float64()
	metrics.RecordBacktestRun(time.Since(start).Seconds(), endingBankroll)

	appLog.WithFields(logrus.Fields{
		"total_games":     summary.TotalGames,
		"total_bets":      summary.TotalBets,
		"wins":            summary.Wins,
		"losses":          summary.Losses,
		"win_rate":        fmt.Sprintf("%.1f%%", summary.WinRate*100),
		"net_profit":      summary.NetProfit.StringFixed(2),
		"ending_bankroll": summary.EndingBankroll.StringFixed(2),
		"roi":             fmt.Sprintf("%.2f%%", summary.ROI*100),
	}).Info("Backtest complete")

	if btConfig.OutputPath != "" {
		if err := writeSummary(summary, btConfig.OutputPath); err != nil {
			appLog.Fatalf("Failed to write results: %v", err)
		}
		appLog.WithField("path", btConfig.OutputPath).Info("Results written")
	}
}

func writeSummary(summary *backtest.Summary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
