// Package config provides configuration management for the court-vision engine.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Backtest  BacktestConfig  `mapstructure:"backtest"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the optional rating-journal database connection.
// When JournalEnabled is false the engine keeps Elo history in memory only.
type DatabaseConfig struct {
	JournalEnabled     bool   `mapstructure:"journal_enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// EngineConfig is the versioned calibration structure for the prediction
// engine. Every tunable constant the pipeline uses lives here so tests can
// assert against documented values and tuning never requires hunting through
// logic.
type EngineConfig struct {
	CalibrationVersion string               `mapstructure:"calibration_version" validate:"required"`
	Elo                EloConfig            `mapstructure:"elo" validate:"required"`
	Simulation         SimulationConfig     `mapstructure:"simulation" validate:"required"`
	Blend              BlendConfig          `mapstructure:"blend" validate:"required"`
	Recommendation     RecommendationConfig `mapstructure:"recommendation" validate:"required"`
}

// EloConfig holds rating table calibration
type EloConfig struct {
	InitialRating float64 `mapstructure:"initial_rating" validate:"required,gt=0"`
	KFactor       float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	HomeAdvantage float64 `mapstructure:"home_advantage" validate:"gte=0"`
	TrendWindow   int     `mapstructure:"trend_window" validate:"required,gt=0"`
}

// SimulationConfig holds score simulator calibration
type SimulationConfig struct {
	Iterations      int     `mapstructure:"iterations" validate:"required,gt=0"`
	HomeCourtPoints float64 `mapstructure:"home_court_points" validate:"gte=0"`
	ScoreStdDev     float64 `mapstructure:"score_std_dev" validate:"required,gt=0"`
	Workers         int     `mapstructure:"workers" validate:"omitempty,gt=0"`
}

// BlendConfig holds probability blender calibration. The five base weights
// intentionally sum to less than 1.0; the remaining probability mass comes
// from the 0.5 base rate and the factor adjustments applied afterwards.
type BlendConfig struct {
	TeamStrengthWeight float64 `mapstructure:"team_strength_weight" validate:"gte=0,lte=1"`
	MatchupWeight      float64 `mapstructure:"matchup_weight" validate:"gte=0,lte=1"`
	InjuryWeight       float64 `mapstructure:"injury_weight" validate:"gte=0,lte=1"`
	FormWeight         float64 `mapstructure:"form_weight" validate:"gte=0,lte=1"`
	SituationalWeight  float64 `mapstructure:"situational_weight" validate:"gte=0,lte=1"`
	Damping            float64 `mapstructure:"damping" validate:"required,gt=0,lte=1"`
	FactorWeight       float64 `mapstructure:"factor_weight" validate:"required,gt=0,lte=1"`
	SimulationWeight   float64 `mapstructure:"simulation_weight" validate:"required,gt=0,lte=1"`
	MinProbability     float64 `mapstructure:"min_probability" validate:"gte=0,lt=1"`
	MaxProbability     float64 `mapstructure:"max_probability" validate:"gt=0,lte=1"`
}

// ThresholdProfile defines STRONG BET / LEAN cutoffs on absolute edge.
// Two profiles exist because deep analysis and value-bet scanning historically
// used slightly different cutoffs; the discrepancy is preserved pending a
// product decision (see DESIGN.md).
type ThresholdProfile struct {
	StrongBetEdge float64 `mapstructure:"strong_bet_edge" validate:"required,gt=0"`
	LeanEdge      float64 `mapstructure:"lean_edge" validate:"required,gt=0"`
}

// RecommendationConfig holds recommendation and confidence calibration
type RecommendationConfig struct {
	DeepAnalysis        ThresholdProfile `mapstructure:"deep_analysis" validate:"required"`
	ValueScan           ThresholdProfile `mapstructure:"value_scan" validate:"required"`
	MinConfidenceForBet float64          `mapstructure:"min_confidence_for_bet" validate:"gte=0,lte=100"`
	KeyInsightThreshold float64          `mapstructure:"key_insight_threshold" validate:"gte=0,lte=10"`
	AdvantageMargin     int              `mapstructure:"advantage_margin" validate:"gte=0"`
}

// FeedConfig represents the resolved-data bundle source
type FeedConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// SchedulerConfig represents recurring slate analysis scheduling
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	SlateCron      string `mapstructure:"slate_cron"`
	SlateBundleDir string `mapstructure:"slate_bundle_dir"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// BacktestConfig represents backtest harness configuration
type BacktestConfig struct {
	GamesPath       string  `mapstructure:"games_path"`
	OutputPath      string  `mapstructure:"output_path"`
	InitialBankroll float64 `mapstructure:"initial_bankroll" validate:"omitempty,gt=0"`
	UnitSize        float64 `mapstructure:"unit_size" validate:"omitempty,gt=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// BaseWeightSum returns the sum of the five base heuristic weights
func (b BlendConfig) BaseWeightSum() float64 {
	return b.TeamStrengthWeight + b.MatchupWeight + b.InjuryWeight + b.FormWeight + b.SituationalWeight
}
