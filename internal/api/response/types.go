package response

import (
	"time"

	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from an auth session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Coord is a grid coordinate in API responses
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snake represents the snake's state in API responses. Body is head-first.
type Snake struct {
	Body    []Coord `json:"body"`
	Heading string  `json:"heading"`
	Length  int     `json:"length"`
}

// Food represents one food cell in API responses
type Food struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Score  int    `json:"score"`
	Weight int    `json:"weight"`
	Color  string `json:"color"`
}

// Session represents a game session in API responses
type Session struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Mode      string    `json:"mode"`
	Score     int       `json:"score"`
	Speed     float64   `json:"speed"`
	Tick      uint64    `json:"tick"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Snake     Snake     `json:"snake"`
	Food      []Food    `json:"food"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionFromModel converts a model.GameSession to a response Session
func SessionFromModel(s *model.GameSession) Session {
	body := make([]Coord, len(s.Snake.Body))
	for i, pos := range s.Snake.Body {
		body[i] = Coord{X: pos.X, Y: pos.Y}
	}

	food := make([]Food, 0)
	for _, pos := range s.Grid.Occupied {
		occ := s.Grid.At(pos)
		if occ.Kind != model.OccupantFood {
			continue
		}
		food = append(food, Food{
			X:      pos.X,
			Y:      pos.Y,
			Score:  occ.Score,
			Weight: occ.Weight,
			Color:  occ.Color,
		})
	}

	return Session{
		ID:      string(s.ID),
		OwnerID: string(s.OwnerID),
		Mode:    s.Mode.String(),
		Score:   s.Score,
		Speed:   s.Speed,
		Tick:    s.Tick,
		Width:   s.Grid.Width,
		Height:  s.Grid.Height,
		Snake: Snake{
			Body:    body,
			Heading: s.Snake.Heading.String(),
			Length:  s.Snake.Length(),
		},
		Food:      food,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// DirectionResponse is the response after a steering request
type DirectionResponse struct {
	Accepted bool   `json:"accepted"`
	Heading  string `json:"heading"`
}

// Summary represents a leaderboard entry in API responses
type Summary struct {
	SessionID   string    `json:"session_id"`
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	Length      int       `json:"length"`
	Ticks       uint64    `json:"ticks"`
	Cause       string    `json:"cause"`
	EndedAt     time.Time `json:"ended_at"`
}

// SummaryFromModel converts a model.GameSummary to a response Summary
func SummaryFromModel(s *model.GameSummary) Summary {
	return Summary{
		SessionID:   string(s.SessionID),
		PlayerID:    string(s.PlayerID),
		DisplayName: s.DisplayName,
		Score:       s.Score,
		Length:      s.Length,
		Ticks:       s.Ticks,
		Cause:       string(s.Cause),
		EndedAt:     s.EndedAt,
	}
}

// LeaderboardResponse is the response for the leaderboard endpoint
type LeaderboardResponse struct {
	Entries []Summary `json:"entries"`
}

// LeaderboardFromModel converts leaderboard summaries
func LeaderboardFromModel(summaries []*model.GameSummary) LeaderboardResponse {
	entries := make([]Summary, len(summaries))
	for i, s := range summaries {
		entries[i] = SummaryFromModel(s)
	}
	return LeaderboardResponse{Entries: entries}
}
