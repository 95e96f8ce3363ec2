// Package sportsref scrapes Sports-Reference college football box score
// pages. Rows are keyed by the page's data-stat attributes.
package sportsref

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
	return external.SourceSportsReference
}

func (Adapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	externalID := payload.String(raw, "id", "boxscore_id")
	if externalID == "" {
		return external.Game{}, fmt.Errorf("sports-reference boxscore id is missing")
	}

	game := external.Game{
		ExternalID: externalID,
		Source:     external.SourceSportsReference,
		HomeTeam:   payload.String(raw, "home_team"),
		AwayTeam:   payload.String(raw, "away_team"),
		HomeScore:  payload.IntPtr(raw, "home_score"),
		AwayScore:  payload.IntPtr(raw, "away_score"),
		Date:       payload.Time(payload.String(raw, "date")),
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

// MapPlayToExternal reads one pbp row. The location cell is "TEAM 35"; it is
// converted only when the row names the offense, since the page does not.
func (Adapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	play := external.Play{
		ExternalGameID: externalGameID,
		ExternalID:     payload.String(raw, "id", "seq"),
		Source:         external.SourceSportsReference,
		Time:           payload.String(raw, "qtr_time_remain", "time"),
		Down:           payload.IntPtr(raw, "down"),
		Distance:       payload.IntPtr(raw, "yds_to_go", "distance"),
		PlayType:       payload.String(raw, "play_type"),
		Description:    payload.String(raw, "detail", "description"),
		OffenseTeam:    payload.String(raw, "offense"),
		DefenseTeam:    payload.String(raw, "defense"),
		RawPayload:     external.Payload(raw),
	}
	if seq, ok := payload.Int(raw, "seq"); ok {
		play.Sequence = seq
	}
	if quarter, ok := payload.Int(raw, "quarter"); ok {
		play.Quarter = quarter
	}
	if play.Down == nil {
		play.Distance = nil
	}

	location := payload.String(raw, "location")
	switch {
	case location == "":
	case play.OffenseTeam != "":
		play.YardLine = payload.DistanceToGoal(location, payload.FirstNonEmpty(payload.String(raw, "offense_abbr"), play.OffenseTeam))
	default:
		if yl := payload.DistanceToGoal(location, ""); yl != nil && *yl == 50 {
			play.YardLine = yl
		}
	}
	return play, nil
}
