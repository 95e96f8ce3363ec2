// Package kaggle reads nflfastR-style play-by-play CSV exports.
package kaggle

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
	return external.SourceKaggle
}

func (Adapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	externalID := payload.String(raw, "game_id")
	if externalID == "" {
		return external.Game{}, fmt.Errorf("kaggle game_id is missing")
	}

	game := external.Game{
		ExternalID: externalID,
		Source:     external.SourceKaggle,
		HomeTeam:   payload.String(raw, "home_team"),
		AwayTeam:   payload.String(raw, "away_team"),
		HomeScore:  payload.IntPtr(raw, "home_score", "total_home_score"),
		AwayScore:  payload.IntPtr(raw, "away_score", "total_away_score"),
		Date:       payload.Time(payload.String(raw, "game_date")),
		Venue:      payload.String(raw, "stadium", "game_stadium"),
		Week:       payload.IntPtr(raw, "week"),
		RawPayload: external.Payload(raw),
	}
	if season, ok := payload.Int(raw, "season"); ok {
		game.Season = season
	}
	return game, nil
}

// MapPlayToExternal reads one CSV row. "NA" cells fail numeric parsing and
// stay nil.
func (Adapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	play := external.Play{
		ExternalGameID: externalGameID,
		ExternalID:     payload.String(raw, "play_id"),
		Source:         external.SourceKaggle,
		Time:           payload.String(raw, "time"),
		Down:           payload.IntPtr(raw, "down"),
		Distance:       payload.IntPtr(raw, "ydstogo"),
		YardLine:       payload.IntPtr(raw, "yardline_100"),
		PlayType:       cell(payload.String(raw, "play_type")),
		Description:    payload.String(raw, "desc"),
		OffenseTeam:    cell(payload.String(raw, "posteam")),
		DefenseTeam:    cell(payload.String(raw, "defteam")),
		RawPayload:     external.Payload(raw),
	}
	if seq, ok := payload.Int(raw, "play_id"); ok {
		play.Sequence = seq
	}
	if quarter, ok := payload.Int(raw, "qtr"); ok {
		play.Quarter = quarter
	}
	if play.Down == nil {
		play.Distance = nil
	}
	return play, nil
}

func cell(v string) string {
	if v == "NA" {
		return ""
	}
	return v
}
