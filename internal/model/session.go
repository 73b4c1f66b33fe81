package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// Mode is the game state machine's current state
type Mode int

const (
	ModeWelcome  Mode = 0
	ModeRunning  Mode = 1
	ModePaused   Mode = 2
	ModeGameOver Mode = 3
)

// String returns the lowercase name of the mode
func (m Mode) String() string {
	switch m {
	case ModeWelcome:
		return "welcome"
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	}
	return "unknown"
}

// GameSession owns one complete simulation: grid, snake, food set and the
// player's per-session stats. A session's grid and snake are rebuilt fresh
// every time a new game starts; nothing is shared across sessions.
//
// Invariant: while the snake is alive, every body segment position has a
// snake occupant in the grid.
type GameSession struct {
	ID      SessionID
	OwnerID PlayerID
	Mode    Mode

	Grid  *Grid
	Snake *Snake

	// Player stats for the current game
	Score int     // cumulative, non-negative
	Speed float64 // ticks per second, non-decreasing while scoring

	Tick      uint64 // completed simulation steps this game
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TickInterval returns the scheduling delay until the next tick,
// derived from the current speed (1000/speed milliseconds).
func (s *GameSession) TickInterval() time.Duration {
	if s.Speed <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / s.Speed)
}

// GameSummary is the record written to the leaderboard when a game ends
type GameSummary struct {
	SessionID   SessionID
	PlayerID    PlayerID
	DisplayName string
	Score       int
	Length      int         // final snake length
	Ticks       uint64      // simulation steps survived
	Cause       OutcomeKind // wall or self_collision
	EndedAt     time.Time
}
