package play

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/standard"
)

// Play is an internal, gradeable play created from a standardized external play.
type Play struct {
	ID             string
	GameID         string
	ExternalPlayID string
	Sequence       int
	Quarter        int
	Time           string
	Down           *int
	Distance       *int
	YardLine       *int
	PlayType       standard.PlayType
	Description    string
	Offense        string
	Defense        string
	Result         standard.Result
	Formation      *string
	Personnel      *string
	Blitz          *bool
	Pressure       *bool
	Coverage       *string
	standard.Flags
	CreatedAt time.Time
}

// FromStandard builds an internal play. Flags are recomputed rather than copied.
func FromStandard(gameID, externalPlayID string, sequence int, sp standard.Play) Play {
	return Play{
		GameID:         gameID,
		ExternalPlayID: externalPlayID,
		Sequence:       sequence,
		Quarter:        sp.Quarter,
		Time:           sp.Time,
		Down:           sp.Down,
		Distance:       sp.Distance,
		YardLine:       sp.YardLine,
		PlayType:       sp.PlayType,
		Description:    sp.Description,
		Offense:        sp.Offense,
		Defense:        sp.Defense,
		Result:         sp.Result,
		Formation:      sp.Formation,
		Personnel:      sp.Personnel,
		Blitz:          sp.Blitz,
		Pressure:       sp.Pressure,
		Coverage:       sp.Coverage,
		Flags:          standard.ComputeFlags(sp.Down, sp.Distance, sp.YardLine),
	}
}

func (p Play) Validate() error {
	if strings.TrimSpace(p.GameID) == "" {
		return fmt.Errorf("play game id is required")
	}
	if !p.PlayType.Valid() {
		return fmt.Errorf("play type %q is not supported", p.PlayType)
	}
	return nil
}
