// Package manual maps hand-entered records that already use the neutral
// field names, in camelCase or snake_case.
package manual

import (
	"fmt"

	"github.com/riskibarqy/film-grading/external/payload"
	"github.com/riskibarqy/film-grading/internal/domain/external"
)

type Adapter struct{}

func NewAdapter() Adapter {
	return Adapter{}
}

func (Adapter) Source() external.Source {
	return external.SourceManual
}

func (Adapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	externalID := payload.String(raw, "externalId", "external_id", "id")
	if externalID == "" {
		return external.Game{}, fmt.Errorf("manual game id is missing")
	}

	game := external.Game{
		ExternalID: externalID,
		Source:     external.SourceManual,
		HomeTeam:   payload.String(raw, "homeTeam", "home_team"),
		AwayTeam:   payload.String(raw, "awayTeam", "away_team"),
		HomeScore:  payload.IntPtr(raw, "homeScore", "home_score"),
		AwayScore:  payload.IntPtr(raw, "awayScore", "away_score"),
		Date:       payload.Time(payload.String(raw, "date", "gameDate", "game_date")),
		Venue:      payload.String(raw, "venue"),
		Week:       payload.IntPtr(raw, "week"),
		RawPayload: external.Payload(raw),
	}
	if season, ok := payload.Int(raw, "season"); ok {
		game.Season = season
	} else if game.Date != nil {
		game.Season = game.Date.Year()
	}
	return game, nil
}

// MapPlayToExternal leaves a missing id or sequence empty for the importer to
// number by position.
func (Adapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	play := external.Play{
		ExternalGameID: externalGameID,
		ExternalID:     payload.String(raw, "externalId", "external_id", "id", "playId", "play_id"),
		Source:         external.SourceManual,
		Time:           payload.String(raw, "time", "clock"),
		Down:           payload.IntPtr(raw, "down"),
		Distance:       payload.IntPtr(raw, "distance"),
		YardLine:       payload.IntPtr(raw, "yardLine", "yard_line"),
		PlayType:       payload.String(raw, "playType", "play_type", "type"),
		Description:    payload.String(raw, "description", "desc", "text"),
		OffenseTeam:    payload.String(raw, "offense", "offenseTeam", "offense_team"),
		DefenseTeam:    payload.String(raw, "defense", "defenseTeam", "defense_team"),
		RawPayload:     external.Payload(raw),
	}
	if seq, ok := payload.Int(raw, "sequence", "seq"); ok {
		play.Sequence = seq
	}
	if quarter, ok := payload.Int(raw, "quarter", "period"); ok {
		play.Quarter = quarter
	}
	return play, nil
}
