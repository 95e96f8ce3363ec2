// Package espn reads ESPN college football game summaries.
package espn

import (
	"fmt"

	"github.com/riskibarqy/film-grading/external/payload"
	"github.com/riskibarqy/film-grading/internal/domain/external"
)

// Keys the feed injects into each play before it reaches the adapter.
const (
	keyOffenseTeam   = "offenseTeam"
	keyDefenseTeam   = "defenseTeam"
	keyOffenseAbbrev = "offenseAbbreviation"
)

type Adapter struct{}

func NewAdapter() Adapter {
	return Adapter{}
}

func (Adapter) Source() external.Source {
	return external.SourceESPN
}

// MapGameToExternal accepts a whole summary document or just its header.
func (Adapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	header := payload.Map(raw["header"])
	if header == nil {
		header = raw
	}

	externalID := payload.String(header, "id")
	if externalID == "" {
		return external.Game{}, fmt.Errorf("espn game id is missing")
	}

	game := external.Game{
		ExternalID: externalID,
		Source:     external.SourceESPN,
		RawPayload: external.Payload(raw),
	}
	if year, ok := payload.AsInt(payload.Path(header, "season", "year")); ok {
		game.Season = year
	}
	game.Week = payload.IntPtr(header, "week")

	competitions := payload.Maps(header["competitions"])
	if len(competitions) > 0 {
		comp := competitions[0]
		game.Date = payload.Time(payload.String(comp, "date"))
		for _, competitor := range payload.Maps(comp["competitors"]) {
			name := teamName(payload.Map(competitor["team"]))
			score := payload.IntPtr(competitor, "score")
			switch payload.String(competitor, "homeAway") {
			case "home":
				game.HomeTeam, game.HomeScore = name, score
			case "away":
				game.AwayTeam, game.AwayScore = name, score
			}
		}
		game.Venue = payload.AsString(payload.Path(comp, "venue", "fullName"))
	}
	if venue := payload.AsString(payload.Path(raw, "gameInfo", "venue", "fullName")); venue != "" {
		game.Venue = venue
	}
	return game, nil
}

func (Adapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	externalID := payload.String(raw, "id")
	if externalID == "" {
		return external.Play{}, fmt.Errorf("espn play id is missing")
	}

	play := external.Play{
		ExternalGameID: externalGameID,
		ExternalID:     externalID,
		Source:         external.SourceESPN,
		Time:           payload.AsString(payload.Path(raw, "clock", "displayValue")),
		PlayType:       payload.AsString(payload.Path(raw, "type", "text")),
		Description:    payload.String(raw, "text"),
		OffenseTeam:    payload.String(raw, keyOffenseTeam),
		DefenseTeam:    payload.String(raw, keyDefenseTeam),
		RawPayload:     external.Payload(raw),
	}
	if seq, ok := payload.Int(raw, "sequenceNumber"); ok {
		play.Sequence = seq
	}
	if quarter, ok := payload.AsInt(payload.Path(raw, "period", "number")); ok {
		play.Quarter = quarter
	}

	start := payload.Map(raw["start"])
	// ESPN reports down 0 on kickoffs and tries.
	if down, ok := payload.Int(start, "down"); ok && down > 0 {
		play.Down = &down
		play.Distance = payload.IntPtr(start, "distance")
	}
	play.YardLine = payload.IntPtr(start, "yardsToEndzone")
	if play.YardLine == nil {
		play.YardLine = payload.DistanceToGoal(payload.String(start, "possessionText"), payload.String(raw, keyOffenseAbbrev))
	}
	return play, nil
}

func teamName(team map[string]any) string {
	return payload.FirstNonEmpty(
		payload.String(team, "displayName"),
		payload.String(team, "location"),
		payload.String(team, "name"),
		payload.String(team, "abbreviation"),
	)
}
