package espn

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/riskibarqy/film-grading/external/feedhttp"
	"github.com/riskibarqy/film-grading/external/payload"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"

type Feed struct {
	client *feedhttp.Client
}

func NewFeed(client *feedhttp.Client) *Feed {
	return &Feed{client: client}
}

func (*Feed) Source() external.Source {
	return external.SourceESPN
}

type teamRef struct {
	name   string
	abbrev string
}

// FetchGame loads /summary?event=<ref> and flattens the drive tree into a
// play list, stamping offense and defense names on each play.
func (f *Feed) FetchGame(ctx context.Context, ref string) (usecase.ProviderGame, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return usecase.ProviderGame{}, fmt.Errorf("%w: espn event id is required", usecase.ErrInvalidInput)
	}

	var summary map[string]any
	if _, err := f.client.GetJSON(ctx, "/summary", url.Values{"event": {ref}}, &summary); err != nil {
		return usecase.ProviderGame{}, fmt.Errorf("fetch espn summary event=%s: %w", ref, err)
	}

	header := payload.Map(summary["header"])
	if header == nil {
		return usecase.ProviderGame{}, fmt.Errorf("espn summary event=%s has no header", ref)
	}
	teams := competitorTeams(header)

	game := map[string]any{"header": header}
	if info := payload.Map(summary["gameInfo"]); info != nil {
		game["gameInfo"] = info
	}
	return usecase.ProviderGame{Game: game, Plays: flattenPlays(summary, teams)}, nil
}

func competitorTeams(header map[string]any) map[string]teamRef {
	out := make(map[string]teamRef, 2)
	for _, comp := range payload.Maps(header["competitions"]) {
		for _, competitor := range payload.Maps(comp["competitors"]) {
			team := payload.Map(competitor["team"])
			teamID := payload.FirstNonEmpty(payload.String(team, "id"), payload.String(competitor, "id"))
			if teamID == "" {
				continue
			}
			out[teamID] = teamRef{name: teamName(team), abbrev: payload.String(team, "abbreviation")}
		}
	}
	return out
}

func flattenPlays(summary map[string]any, teams map[string]teamRef) []map[string]any {
	var drives []map[string]any
	drives = append(drives, payload.Maps(payload.Path(summary, "drives", "previous"))...)
	if current := payload.Map(payload.Path(summary, "drives", "current")); current != nil {
		drives = append(drives, current)
	}

	out := make([]map[string]any, 0, 192)
	seen := make(map[string]struct{}, 192)
	add := func(play map[string]any, driveTeamID string) {
		playID := payload.String(play, "id")
		if playID != "" {
			if _, dup := seen[playID]; dup {
				return
			}
			seen[playID] = struct{}{}
		}
		row := maps.Clone(play)
		offenseID := payload.FirstNonEmpty(payload.AsString(payload.Path(play, "start", "team", "id")), driveTeamID)
		if offense, ok := teams[offenseID]; ok {
			row[keyOffenseTeam] = offense.name
			row[keyOffenseAbbrev] = offense.abbrev
			for teamID, other := range teams {
				if teamID != offenseID {
					row[keyDefenseTeam] = other.name
				}
			}
		}
		out = append(out, row)
	}

	for _, drive := range drives {
		driveTeamID := payload.AsString(payload.Path(drive, "team", "id"))
		for _, play := range payload.Maps(drive["plays"]) {
			add(play, driveTeamID)
		}
	}
	if len(out) == 0 {
		for _, play := range payload.Maps(summary["plays"]) {
			add(play, "")
		}
	}
	return out
}
