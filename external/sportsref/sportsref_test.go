package sportsref

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/film-grading/external/feedhttp"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

const boxScoreHTML = `<html><body>
<div class="scorebox">
  <div><div><strong><a href="/cfb/schools/georgia/2024.html">Georgia</a></strong></div><div class="scores"><div class="score">28</div></div></div>
  <div><div><strong><a href="/cfb/schools/alabama/2024.html">Alabama</a></strong></div><div class="scores"><div class="score">31</div></div></div>
  <div class="scorebox_meta">
    <div>Saturday, September 7, 2024</div>
    <div>Stadium: Bryant-Denny Stadium</div>
  </div>
</div>
<div id="all_pbp">
<!--
<table id="pbp"><thead><tr><th data-stat="quarter">Quarter</th></tr></thead><tbody>
<tr><th data-stat="quarter">1</th><td data-stat="qtr_time_remain">15:00</td><td data-stat="down"></td><td data-stat="yds_to_go"></td><td data-stat="location">ALA 35</td><td data-stat="detail">Alabama kickoff for 65 yards, touchback</td></tr>
<tr><th data-stat="quarter"></th><td data-stat="qtr_time_remain">14:55</td><td data-stat="down">1</td><td data-stat="yds_to_go">10</td><td data-stat="location">UGA 25</td><td data-stat="detail">Carson Beck pass complete to Dillon Bell for 12 yards</td></tr>
<tr class="thead"><th data-stat="quarter">Quarter</th></tr>
<tr><th data-stat="quarter">2</th><td data-stat="qtr_time_remain">7:45</td><td data-stat="down">3</td><td data-stat="yds_to_go">2</td><td data-stat="location">50</td><td data-stat="detail">Jalen Milroe rush for 3 yards</td></tr>
</tbody></table>
-->
</div>
</body></html>`

func TestParseBoxScore(t *testing.T) {
	t.Parallel()

	got, err := ParseBoxScore(strings.NewReader(boxScoreHTML), "2024-09-07-alabama")
	require.NoError(t, err)
	require.Equal(t, "Alabama", got.Game["home_team"])
	require.Equal(t, "Georgia", got.Game["away_team"])
	require.Equal(t, "31", got.Game["home_score"])
	require.Equal(t, "Bryant-Denny Stadium", got.Game["venue"])
	require.Len(t, got.Plays, 3)
	require.Equal(t, "1", got.Plays[1]["quarter"])
	require.Equal(t, "3", got.Plays[2]["seq"])

	adapter := NewAdapter()
	game, err := adapter.MapGameToExternal(got.Game)
	require.NoError(t, err)
	require.Equal(t, "2024-09-07-alabama", game.ExternalID)
	require.Equal(t, 2024, game.Season)
	require.Equal(t, 28, *game.AwayScore)

	kick, err := adapter.MapPlayToExternal(got.Plays[0], game.ExternalID)
	require.NoError(t, err)
	require.Equal(t, "1", kick.ExternalID)
	require.Nil(t, kick.Down)
	require.Nil(t, kick.YardLine)

	pass, err := adapter.MapPlayToExternal(got.Plays[1], game.ExternalID)
	require.NoError(t, err)
	require.Equal(t, 1, pass.Quarter)
	require.Equal(t, 10, *pass.Distance)

	mid, err := adapter.MapPlayToExternal(got.Plays[2], game.ExternalID)
	require.NoError(t, err)
	require.Equal(t, 50, *mid.YardLine)
}

func TestAdapter_MapPlayToExternal_ConvertsWithOffense(t *testing.T) {
	t.Parallel()

	play, err := NewAdapter().MapPlayToExternal(map[string]any{
		"seq": "4", "location": "UGA 25", "offense": "Georgia", "offense_abbr": "UGA", "detail": "run for 2",
	}, "g")
	require.NoError(t, err)
	require.Equal(t, 75, *play.YardLine)
}

func TestFeed_FetchGame(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cfb/boxscores/2024-09-07-alabama.html" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(boxScoreHTML))
	}))
	defer srv.Close()

	feed := NewFeed(feedhttp.New(feedhttp.Config{Name: "sports_reference", BaseURL: srv.URL, Logger: logging.NewNop()}))
	got, err := feed.FetchGame(t.Context(), "2024-09-07-alabama")
	require.NoError(t, err)
	require.Len(t, got.Plays, 3)

	_, err = feed.FetchGame(t.Context(), "2024-09-07-nowhere")
	require.True(t, errors.Is(err, usecase.ErrNotFound))

	_, err = feed.FetchGame(t.Context(), "../etc/passwd")
	require.True(t, errors.Is(err, usecase.ErrInvalidInput))
}
