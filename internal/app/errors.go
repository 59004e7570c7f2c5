package service

import "errors"

// Cycle-level conditions. These abort one refresh, never the process.
var (
	ErrNoCompletedGames = errors.New("no completed games in any configured season")
	ErrTeamNotFound     = errors.New("team box score not found in game summary")
	ErrNoSnapshot       = errors.New("no snapshot published yet")
	ErrAlreadyStarted   = errors.New("service already started")
)
