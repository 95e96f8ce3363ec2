// Package ncaa reads a CollegeFootballData-style REST API: /games?id= and
// /plays?gameId=. Both snake_case and camelCase field spellings are accepted.
package ncaa

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/film-grading/external/feedhttp"
	"github.com/riskibarqy/film-grading/external/payload"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

const DefaultBaseURL = "https://api.collegefootballdata.com"

type Adapter struct{}

func NewAdapter() Adapter {
	return Adapter{}
}

func (Adapter) Source() external.Source {
	return external.SourceNCAAAPI
}

func (Adapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	externalID := payload.String(raw, "id", "game_id", "gameId")
	if externalID == "" {
		return external.Game{}, fmt.Errorf("ncaa game id is missing")
	}

	game := external.Game{
		ExternalID: externalID,
		Source:     external.SourceNCAAAPI,
		HomeTeam:   payload.String(raw, "home_team", "homeTeam"),
		AwayTeam:   payload.String(raw, "away_team", "awayTeam"),
		HomeScore:  payload.IntPtr(raw, "home_points", "homePoints"),
		AwayScore:  payload.IntPtr(raw, "away_points", "awayPoints"),
		Date:       payload.Time(payload.String(raw, "start_date", "startDate", "date")),
		Venue:      payload.String(raw, "venue"),
		Week:       payload.IntPtr(raw, "week"),
		RawPayload: external.Payload(raw),
	}
	if season, ok := payload.Int(raw, "season", "year"); ok {
		game.Season = season
	}
	return game, nil
}

func (Adapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	play := external.Play{
		ExternalGameID: externalGameID,
		ExternalID:     payload.String(raw, "id", "play_id", "playId"),
		Source:         external.SourceNCAAAPI,
		Time:           clock(raw),
		Down:           payload.IntPtr(raw, "down"),
		Distance:       payload.IntPtr(raw, "distance"),
		YardLine:       payload.IntPtr(raw, "yards_to_goal", "yardsToGoal"),
		PlayType:       payload.String(raw, "play_type", "playType"),
		Description:    payload.String(raw, "play_text", "playText", "description"),
		OffenseTeam:    payload.String(raw, "offense"),
		DefenseTeam:    payload.String(raw, "defense"),
		RawPayload:     external.Payload(raw),
	}
	if quarter, ok := payload.Int(raw, "period", "quarter"); ok {
		play.Quarter = quarter
	}
	if seq, ok := payload.Int(raw, "play_number", "playNumber"); ok {
		play.Sequence = seq
	}
	if play.Down != nil && *play.Down <= 0 {
		play.Down, play.Distance = nil, nil
	}
	return play, nil
}

// clock renders {minutes, seconds} as M:SS; a plain string passes through.
func clock(raw map[string]any) string {
	if s := payload.String(raw, "clock"); s != "" {
		return s
	}
	c := payload.Map(raw["clock"])
	if c == nil {
		return ""
	}
	minutes, okM := payload.Int(c, "minutes")
	seconds, okS := payload.Int(c, "seconds")
	if !okM && !okS {
		return ""
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

type Feed struct {
	client *feedhttp.Client
}

func NewFeed(client *feedhttp.Client) *Feed {
	return &Feed{client: client}
}

func (*Feed) Source() external.Source {
	return external.SourceNCAAAPI
}

func (f *Feed) FetchGame(ctx context.Context, ref string) (usecase.ProviderGame, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return usecase.ProviderGame{}, fmt.Errorf("%w: ncaa game id is required", usecase.ErrInvalidInput)
	}

	var games []map[string]any
	if _, err := f.client.GetJSON(ctx, "/games", url.Values{"id": {ref}}, &games); err != nil {
		return usecase.ProviderGame{}, fmt.Errorf("fetch ncaa game id=%s: %w", ref, err)
	}
	if len(games) == 0 {
		return usecase.ProviderGame{}, fmt.Errorf("%w: ncaa game id=%s", usecase.ErrNotFound, ref)
	}

	var plays []map[string]any
	if _, err := f.client.GetJSON(ctx, "/plays", url.Values{"gameId": {ref}}, &plays); err != nil {
		return usecase.ProviderGame{}, fmt.Errorf("fetch ncaa plays game_id=%s: %w", ref, err)
	}
	return usecase.ProviderGame{Game: games[0], Plays: plays}, nil
}
