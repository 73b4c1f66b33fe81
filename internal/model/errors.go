package model

import "errors"

// Common errors used across the application.
//
// Illegal state transition requests (pause while in welcome, start while
// running, ...) are deliberately absent: per the game's contract they are
// silent no-ops, not errors.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrNotSessionOwner   = errors.New("player does not own this session")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrInvalidSpawn      = errors.New("spawn position outside grid")
	ErrSessionNotRunning = errors.New("session is not running")
)
