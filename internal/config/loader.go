// Package config provides configuration management for the court-vision engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields. The config file is optional; when missing, defaults and environment
// variables alone configure the engine.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("COURT_VISION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "court-vision")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("feed.timeout_seconds", 30)
	v.SetDefault("feed.max_retries", 3)
	v.SetDefault("feed.rate_limit", 5.0)
	v.SetDefault("scheduler.slate_cron", "0 12 * * *")
	v.SetDefault("backtest.initial_bankroll", 1000.0)
	v.SetDefault("backtest.unit_size", 10.0)
	v.SetDefault("backtest.output_path", "./output/backtest_results.json")

	eng := DefaultEngineConfig()
	v.SetDefault("engine.calibration_version", eng.CalibrationVersion)
	v.SetDefault("engine.elo.initial_rating", eng.Elo.InitialRating)
	v.SetDefault("engine.elo.k_factor", eng.Elo.KFactor)
	v.SetDefault("engine.elo.home_advantage", eng.Elo.HomeAdvantage)
	v.SetDefault("engine.elo.trend_window", eng.Elo.TrendWindow)
	v.SetDefault("engine.simulation.iterations", eng.Simulation.Iterations)
	v.SetDefault("engine.simulation.home_court_points", eng.Simulation.HomeCourtPoints)
	v.SetDefault("engine.simulation.score_std_dev", eng.Simulation.ScoreStdDev)
	v.SetDefault("engine.simulation.workers", eng.Simulation.Workers)
	v.SetDefault("engine.blend.team_strength_weight", eng.Blend.TeamStrengthWeight)
	v.SetDefault("engine.blend.matchup_weight", eng.Blend.MatchupWeight)
	v.SetDefault("engine.blend.injury_weight", eng.Blend.InjuryWeight)
	v.SetDefault("engine.blend.form_weight", eng.Blend.FormWeight)
	v.SetDefault("engine.blend.situational_weight", eng.Blend.SituationalWeight)
	v.SetDefault("engine.blend.damping", eng.Blend.Damping)
	v.SetDefault("engine.blend.factor_weight", eng.Blend.FactorWeight)
	v.SetDefault("engine.blend.simulation_weight", eng.Blend.SimulationWeight)
	v.SetDefault("engine.blend.min_probability", eng.Blend.MinProbability)
	v.SetDefault("engine.blend.max_probability", eng.Blend.MaxProbability)
	v.SetDefault("engine.recommendation.deep_analysis.strong_bet_edge", eng.Recommendation.DeepAnalysis.StrongBetEdge)
	v.SetDefault("engine.recommendation.deep_analysis.lean_edge", eng.Recommendation.DeepAnalysis.LeanEdge)
	v.SetDefault("engine.recommendation.value_scan.strong_bet_edge", eng.Recommendation.ValueScan.StrongBetEdge)
	v.SetDefault("engine.recommendation.value_scan.lean_edge", eng.Recommendation.ValueScan.LeanEdge)
	v.SetDefault("engine.recommendation.min_confidence_for_bet", eng.Recommendation.MinConfidenceForBet)
	v.SetDefault("engine.recommendation.key_insight_threshold", eng.Recommendation.KeyInsightThreshold)
	v.SetDefault("engine.recommendation.advantage_margin", eng.Recommendation.AdvantageMargin)
}
