// Package config provides configuration management for the court-vision engine.
package config

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	blend := cfg.Engine.Blend

	// The base heuristic weights must leave probability mass for the 0.5
	// base rate and factor adjustments
	if blend.BaseWeightSum() >= 1.0 {
		return fmt.Errorf("blend base weights sum to %.3f, must be less than 1.0", blend.BaseWeightSum())
	}

	if math.Abs(blend.FactorWeight+blend.SimulationWeight-1.0) > 1e-9 {
		return fmt.Errorf("factor_weight (%.3f) and simulation_weight (%.3f) must sum to 1.0",
			blend.FactorWeight, blend.SimulationWeight)
	}

	if blend.MinProbability >= blend.MaxProbability {
		return fmt.Errorf("min_probability (%.3f) must be below max_probability (%.3f)",
			blend.MinProbability, blend.MaxProbability)
	}

	rec := cfg.Engine.Recommendation
	for name, profile := range map[string]ThresholdProfile{
		"deep_analysis": rec.DeepAnalysis,
		"value_scan":    rec.ValueScan,
	} {
		if profile.LeanEdge >= profile.StrongBetEdge {
			return fmt.Errorf("%s: lean_edge (%.2f) must be below strong_bet_edge (%.2f)",
				name, profile.LeanEdge, profile.StrongBetEdge)
		}
	}

	if cfg.Database.JournalEnabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database journal enabled but connection settings are incomplete")
		}
	}

	return nil
}

// formatValidationErrors formats validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, err := range errs {
		msg += fmt.Sprintf("\n  - field '%s' failed on '%s' rule", err.Namespace(), err.Tag())
	}
	return fmt.Errorf("%s", msg)
}
