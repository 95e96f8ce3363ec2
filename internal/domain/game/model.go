package game

import (
	"fmt"
	"strings"
	"time"
)

// Game is an internal game shell plays are graded under. Each shell belongs to
// exactly one external game, so ExternalGameID is the natural key.
type Game struct {
	ID             string
	TeamID         string
	OpponentID     string
	Date           time.Time
	Season         int
	Week           *int
	Venue          string
	TeamScore      *int
	OpponentScore  *int
	Source         string
	ExternalGameID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ExternalGameID) == "" {
		return fmt.Errorf("game external game id is required")
	}
	if strings.TrimSpace(g.TeamID) == "" {
		return fmt.Errorf("game team id is required")
	}
	if strings.TrimSpace(g.OpponentID) == "" {
		return fmt.Errorf("game opponent id is required")
	}
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	return nil
}

// DayKey truncates a kickoff time to the calendar day stored on the game.
func DayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
