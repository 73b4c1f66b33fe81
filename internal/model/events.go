package model

// EventType identifies the type of event pushed to rendering clients
type EventType string

const (
	EventSessionStarted EventType = "session-started"
	EventFrame          EventType = "frame"
	EventPaused         EventType = "paused"
	EventResumed        EventType = "resumed"
	EventGameOver       EventType = "game-over"
)
