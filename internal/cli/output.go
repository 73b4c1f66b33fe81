package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case DirectionResult:
		o.printDirectionResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Coord response type
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snake response type
type Snake struct {
	Body    []Coord `json:"body"`
	Heading string  `json:"heading"`
	Length  int     `json:"length"`
}

// Food response type
type Food struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Score  int    `json:"score"`
	Weight int    `json:"weight"`
	Color  string `json:"color"`
}

// Session response type
type Session struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Mode    string  `json:"mode"`
	Score   int     `json:"score"`
	Speed   float64 `json:"speed"`
	Tick    uint64  `json:"tick"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Snake   Snake   `json:"snake"`
	Food    []Food  `json:"food"`
}

// DirectionResult response type
type DirectionResult struct {
	Accepted bool   `json:"accepted"`
	Heading  string `json:"heading"`
}

// Summary response type
type Summary struct {
	SessionID   string `json:"session_id"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Length      int    `json:"length"`
	Ticks       uint64 `json:"ticks"`
	Cause       string `json:"cause"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []Summary `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Mode: %s\n", s.Mode)
	fmt.Printf("Score: %d\n", s.Score)
	fmt.Printf("Speed: %.2f ticks/s\n", s.Speed)
	fmt.Printf("Tick: %d\n", s.Tick)
	fmt.Printf("Grid: %dx%d\n", s.Width, s.Height)
	fmt.Printf("Snake: length %d, heading %s\n", s.Snake.Length, s.Snake.Heading)

	if len(s.Food) > 0 {
		fmt.Printf("Food (%d):\n", len(s.Food))
		for _, f := range s.Food {
			fmt.Printf("  - (%d,%d) worth %d\n", f.X, f.Y, f.Score)
		}
	}

	// Only draw grids that fit in a terminal
	if s.Width <= 64 && s.Height <= 64 {
		fmt.Println()
		o.printBoard(s)
	}
}

// printBoard renders the grid: H for the head, o for body segments, digits
// for food scores, dots for empty cells
func (o *Output) printBoard(s Session) {
	rows := make([][]byte, s.Height)
	for y := range rows {
		rows[y] = make([]byte, s.Width)
		for x := range rows[y] {
			rows[y][x] = '.'
		}
	}

	for _, f := range s.Food {
		if f.Y >= 0 && f.Y < s.Height && f.X >= 0 && f.X < s.Width {
			rows[f.Y][f.X] = byte('0' + f.Score%10)
		}
	}
	for i, c := range s.Snake.Body {
		if c.Y < 0 || c.Y >= s.Height || c.X < 0 || c.X >= s.Width {
			continue
		}
		if i == 0 {
			rows[c.Y][c.X] = 'H'
		} else {
			rows[c.Y][c.X] = 'o'
		}
	}

	border := make([]byte, s.Width)
	for i := range border {
		border[i] = '-'
	}

	fmt.Printf("+%s+\n", border)
	for _, row := range rows {
		fmt.Printf("|%s|\n", row)
	}
	fmt.Printf("+%s+\n", border)
}

func (o *Output) printDirectionResult(d DirectionResult) {
	if d.Accepted {
		fmt.Printf("Heading changed: %s\n", d.Heading)
	} else {
		fmt.Printf("Heading unchanged: %s\n", d.Heading)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}

	fmt.Println("Leaderboard:")
	for i, e := range l.Entries {
		fmt.Printf("%3d. %s - %d points (length %d, %d ticks", i+1, e.DisplayName, e.Score, e.Length, e.Ticks)
		if e.Cause != "" {
			fmt.Printf(", %s", e.Cause)
		}
		fmt.Println(")")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
