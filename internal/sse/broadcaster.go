package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/gridsnake/gridsnake/internal/model"
)

// Frame is the wire representation of a single rendered game state. It
// carries only the occupied cells, so clients repaint deltas against a
// blank grid rather than receiving the full cell matrix every tick.
type Frame struct {
	SessionID string      `json:"session_id"`
	Tick      uint64      `json:"tick"`
	Mode      string      `json:"mode"`
	Score     int         `json:"score"`
	Speed     float64     `json:"speed"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Head      FrameCoord  `json:"head"`
	Heading   string      `json:"heading"`
	Length    int         `json:"length"`
	Cells     []FrameCell `json:"cells"`
}

// FrameCoord is a grid coordinate on the wire
type FrameCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FrameCell is one occupied cell on the wire
type FrameCell struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Kind  string `json:"kind"`
	Score int    `json:"score,omitempty"`
	Color string `json:"color,omitempty"`
}

// GameOverNotice is the terminal event payload for a session
type GameOverNotice struct {
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	Length    int    `json:"length"`
	Ticks     uint64 `json:"ticks"`
	Result    int    `json:"result"`
}

// Broadcaster publishes game state to SSE clients watching each session
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// PublishFrame broadcasts the session's current state as a frame event
func (b *Broadcaster) PublishFrame(session *model.GameSession) {
	hub := b.hubManager.GetHub(session.ID)
	if hub == nil {
		return
	}

	frame := BuildFrame(session)
	data, err := json.Marshal(frame)
	if err != nil {
		b.logger.Error("sse failed to encode frame",
			slog.String("session", string(session.ID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(model.EventFrame), string(data))
}

// PublishGameOver broadcasts the terminal event for a session
func (b *Broadcaster) PublishGameOver(session *model.GameSession) {
	hub := b.hubManager.GetHub(session.ID)
	if hub == nil {
		return
	}

	notice := GameOverNotice{
		SessionID: string(session.ID),
		Score:     session.Score,
		Length:    session.Snake.Length(),
		Ticks:     session.Tick,
		Result:    session.Snake.Result,
	}
	data, err := json.Marshal(notice)
	if err != nil {
		b.logger.Error("sse failed to encode game-over notice",
			slog.String("session", string(session.ID)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(model.EventGameOver), string(data))
}

// PublishModeChange broadcasts a lifecycle event (paused, resumed, started)
func (b *Broadcaster) PublishModeChange(session *model.GameSession, event model.EventType) {
	hub := b.hubManager.GetHub(session.ID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(string(event), session.Mode.String())

	// Lifecycle changes also repaint the board
	b.PublishFrame(session)
}

// BuildFrame projects a game session into its wire representation
func BuildFrame(session *model.GameSession) Frame {
	grid := session.Grid
	cells := make([]FrameCell, 0, len(grid.Occupied))
	for _, pos := range grid.Occupied {
		occ := grid.At(pos)
		if occ.Kind == model.OccupantEmpty {
			continue
		}
		cells = append(cells, FrameCell{
			X:     pos.X,
			Y:     pos.Y,
			Kind:  string(occ.Kind),
			Score: occ.Score,
			Color: occ.Color,
		})
	}

	head := session.Snake.Head()
	return Frame{
		SessionID: string(session.ID),
		Tick:      session.Tick,
		Mode:      session.Mode.String(),
		Score:     session.Score,
		Speed:     session.Speed,
		Width:     grid.Width,
		Height:    grid.Height,
		Head:      FrameCoord{X: head.X, Y: head.Y},
		Heading:   session.Snake.Heading.String(),
		Length:    session.Snake.Length(),
		Cells:     cells,
	}
}
