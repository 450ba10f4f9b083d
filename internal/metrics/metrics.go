// Package metrics provides the centralized Prometheus metrics registry for
// the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "analyses_total",
		Help:      "Total number of games analyzed",
	})
	AnalysisFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "analysis_failures_total",
		Help:      "Total number of game analyses that produced a stub result",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "recommendations_total",
		Help:      "Total recommendations produced, by action",
	}, []string{"action"})
	FactorFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "factor_fallbacks_total",
		Help:      "Total neutral fallbacks due to missing factor data, by factor",
	}, []string{"factor"})
	RatingUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "rating_updates_total",
		Help:      "Total Elo rating updates applied",
	})
	SlatesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_vision",
		Name:      "slates_processed_total",
		Help:      "Total scheduled slates processed",
	})
)

// Gauge metrics
var (
	TrackedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "court_vision",
		Name:      "tracked_teams",
		Help:      "Number of teams currently tracked by the rating table",
	})
	LastSlateSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "court_vision",
		Name:      "last_slate_size",
		Help:      "Number of games in the most recently processed slate",
	})
	BacktestBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "court_vision",
		Name:      "backtest_bankroll",
		Help:      "Ending bankroll of the most recent backtest run",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "court_vision",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of single-game analysis in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "court_vision",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of Monte Carlo score simulation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "court_vision",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(AnalysisFailuresTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(FactorFallbacksTotal)
		registry.MustRegister(RatingUpdatesTotal)
		registry.MustRegister(SlatesProcessedTotal)

		// Register gauge metrics
		registry.MustRegister(TrackedTeams)
		registry.MustRegister(LastSlateSize)
		registry.MustRegister(BacktestBankroll)

		// Register histogram metrics
		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records a completed game analysis.
func RecordAnalysis(durationSeconds float64) {
	AnalysesTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordAnalysisFailure records a game analysis that fell back to a stub.
func RecordAnalysisFailure() {
	AnalysisFailuresTotal.Inc()
}

// RecordRecommendation records a recommendation by action.
func RecordRecommendation(action string) {
	RecommendationsTotal.WithLabelValues(action).Inc()
}

// RecordFactorFallback records a neutral fallback for one factor.
func RecordFactorFallback(factor string) {
	FactorFallbacksTotal.WithLabelValues(factor).Inc()
}

// RecordRatingUpdate records an applied Elo update.
func RecordRatingUpdate() {
	RatingUpdatesTotal.Inc()
}

// RecordSlateProcessed records a processed slate and its size.
func RecordSlateProcessed(games int) {
	SlatesProcessedTotal.Inc()
	LastSlateSize.Set(float64(games))
}

// UpdateTrackedTeams updates the rating table size gauge.
func UpdateTrackedTeams(count int) {
	TrackedTeams.Set(float64(count))
}

// RecordSimulationDuration records simulation latency.
func RecordSimulationDuration(durationSeconds float64) {
	SimulationDuration.Observe(durationSeconds)
}

// RecordBacktestRun records a backtest run's duration and ending bankroll.
func RecordBacktestRun(durationSeconds, endingBankroll float64) {
	BacktestDuration.Observe(durationSeconds)
	BacktestBankroll.Set(endingBankroll)
}
