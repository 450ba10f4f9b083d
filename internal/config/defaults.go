package config

// Calibration defaults, version 2024.1. These are the documented values the
// tests assert against; runtime overrides come through the config file or
// COURT_VISION_* environment variables.
const (
	DefaultCalibrationVersion = "2024.1"

	DefaultInitialRating = 1500.0
	DefaultKFactor       = 20.0
	DefaultHomeAdvantage = 100.0
	DefaultTrendWindow   = 10

	DefaultSimIterations   = 10000
	DefaultHomeCourtPoints = 3.0
	DefaultScoreStdDev     = 12.0

	DefaultTeamStrengthWeight = 0.25
	DefaultMatchupWeight      = 0.15
	DefaultInjuryWeight       = 0.15
	DefaultFormWeight         = 0.20
	DefaultSituationalWeight  = 0.10
	DefaultDamping            = 0.85
	DefaultFactorWeight       = 0.75
	DefaultSimulationWeight   = 0.25
	DefaultMinProbability     = 0.05
	DefaultMaxProbability     = 0.95

	DefaultStrongBetEdge     = 10.0
	DefaultLeanEdge          = 5.0
	DefaultScanStrongBetEdge = 10.0
	DefaultScanLeanEdge      = 3.0

	DefaultMinConfidenceForBet = 50.0
	DefaultKeyInsightThreshold = 5.0
	DefaultAdvantageMargin     = 2
)

// DefaultEngineConfig returns the engine calibration used when no config file
// overrides it
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CalibrationVersion: DefaultCalibrationVersion,
		Elo: EloConfig{
			InitialRating: DefaultInitialRating,
			KFactor:       DefaultKFactor,
			HomeAdvantage: DefaultHomeAdvantage,
			TrendWindow:   DefaultTrendWindow,
		},
		Simulation: SimulationConfig{
			Iterations:      DefaultSimIterations,
			HomeCourtPoints: DefaultHomeCourtPoints,
			ScoreStdDev:     DefaultScoreStdDev,
			Workers:         1,
		},
		Blend: BlendConfig{
			TeamStrengthWeight: DefaultTeamStrengthWeight,
			MatchupWeight:      DefaultMatchupWeight,
			InjuryWeight:       DefaultInjuryWeight,
			FormWeight:         DefaultFormWeight,
			SituationalWeight:  DefaultSituationalWeight,
			Damping:            DefaultDamping,
			FactorWeight:       DefaultFactorWeight,
			SimulationWeight:   DefaultSimulationWeight,
			MinProbability:     DefaultMinProbability,
			MaxProbability:     DefaultMaxProbability,
		},
		Recommendation: RecommendationConfig{
			DeepAnalysis: ThresholdProfile{
				StrongBetEdge: DefaultStrongBetEdge,
				LeanEdge:      DefaultLeanEdge,
			},
			ValueScan: ThresholdProfile{
				StrongBetEdge: DefaultScanStrongBetEdge,
				LeanEdge:      DefaultScanLeanEdge,
			},
			MinConfidenceForBet: DefaultMinConfidenceForBet,
			KeyInsightThreshold: DefaultKeyInsightThreshold,
			AdvantageMargin:     DefaultAdvantageMargin,
		},
	}
}
