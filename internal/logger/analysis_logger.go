// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for analysis pipeline events.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogGameAnalysis logs a completed game analysis.
func (al *AnalysisLogger) LogGameAnalysis(gameID, homeTeam, awayTeam string, homeWinProb, confidence float64, durationMs float64) {
	al.WithFields(logrus.Fields{
		"game_id":              gameID,
		"home_team":            homeTeam,
		"away_team":            awayTeam,
		"home_win_probability": homeWinProb,
		"confidence":           confidence,
		"analysis_duration_ms": durationMs,
	}).Info("Game analysis completed")
}

// LogRecommendation logs the decision attached to an analysis.
func (al *AnalysisLogger) LogRecommendation(gameID, action, side string, odds int, units, edge, confidence float64) {
	al.WithFields(logrus.Fields{
		"game_id":    gameID,
		"action":     action,
		"side":       side,
		"odds":       odds,
		"units":      units,
		"edge":       edge,
		"confidence": confidence,
	}).Info("Recommendation issued")
}

// LogFactorFallback logs a factor degrading to its neutral default.
func (al *AnalysisLogger) LogFactorFallback(gameID, factorName, dataSource string) {
	al.WithFields(logrus.Fields{
		"game_id":     gameID,
		"factor":      factorName,
		"data_source": dataSource,
	}).Debug("Factor data unavailable, using neutral default")
}

// LogRatingUpdate logs an Elo rating change.
func (al *AnalysisLogger) LogRatingUpdate(team, opponent string, oldRating, newRating, delta float64, won bool) {
	al.WithFields(logrus.Fields{
		"team":       team,
		"opponent":   opponent,
		"old_rating": oldRating,
		"new_rating": newRating,
		"delta":      delta,
		"won":        won,
	}).Debug("Elo rating updated")
}
