// Package main provides the Elo rankings CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/database"
	"github.com/yourusername/court-vision/internal/logger"
	"github.com/yourusername/court-vision/internal/repository"
	"github.com/yourusername/court-vision/internal/service"
)

var (
	configFile string
	limit      int
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	analysis   *service.AnalysisService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the top N teams (0 shows all)")
}

var rootCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Display current Elo power rankings",
	Long:  `Replays the rating journal and prints every tracked team ranked by Elo rating.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayRankings()
	},
}

func main() {
	defer func() {
		if db != nil {
			db.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	appLog = logger.NewLogger("warn")

	var journal repository.RatingJournal
	if cfg.Database.JournalEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		journal, err = repository.NewPostgresRatingJournal(db)
		if err != nil {
			return fmt.Errorf("failed to initialize rating journal: %w", err)
		}
	}

	analysis = service.NewAnalysisService(cfg, journal, appLog)
	return nil
}

func displayRankings() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := analysis.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore rating state: %w", err)
	}

	rankings := analysis.Rankings()
	if len(rankings) == 0 {
		fmt.Println("No rated teams. Record game results or point the engine at a rating journal.")
		return nil
	}
	if limit > 0 && limit < len(rankings) {
		rankings = rankings[:limit]
	}

	fmt.Println("\n╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║                 Court Vision Power Rankings              ║")
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
	fmt.Printf("\n%4s  %-6s %8s  %7s  %7s\n", "Rank", "Team", "Rating", "Record", "Trend")

	for _, ranking := range rankings {
		trend := fmt.Sprintf("%+.1f", ranking.Trend)
		if ranking.Trend == 0 {
			trend = "--"
		}
		fmt.Printf("%4d  %-6s %8.1f  %4d-%-3d %7s\n",
			ranking.Rank,
			ranking.Team,
			ranking.Rating,
			ranking.Wins,
			ranking.Losses,
			trend,
		)
	}

	fmt.Printf("\nCalibration: %s\n\n", cfg.Engine.CalibrationVersion)
	return nil
}
