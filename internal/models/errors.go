package models

import "errors"

// Custom errors
var (
	ErrTeamNotFound = errors.New("team not found in rating table")
	ErrNotFound     = errors.New("record not found")
	ErrInvalidOdds  = errors.New("invalid odds value")
	ErrNoMarketData = errors.New("no market data for game")
	ErrMissingTeams = errors.New("game is missing home or away team")
)
