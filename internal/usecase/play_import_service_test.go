package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/game"
	"github.com/riskibarqy/film-grading/internal/domain/play"
	"github.com/riskibarqy/film-grading/internal/domain/standard"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/memory"
	externalmock "github.com/riskibarqy/film-grading/internal/mocks/domain/external"
	gamemock "github.com/riskibarqy/film-grading/internal/mocks/domain/game"
	playmock "github.com/riskibarqy/film-grading/internal/mocks/domain/play"
	teammock "github.com/riskibarqy/film-grading/internal/mocks/domain/team"
	"github.com/riskibarqy/film-grading/internal/platform/id"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/metrics"
)

var anyCtx = mock.MatchedBy(func(context.Context) bool { return true })

func newMockedService(t *testing.T) (*PlayImportService, *externalmock.Repository, *spyObserver) {
	t.Helper()

	extRepo := externalmock.NewRepository(t)
	observer := &spyObserver{}
	service := NewPlayImportService(PlayImportDeps{
		Registry:     NewAdapterRegistry(stubAdapter{source: external.SourceESPN}),
		ExternalRepo: extRepo,
		GameRepo:     gamemock.NewRepository(t),
		PlayRepo:     playmock.NewRepository(t),
		TeamRepo:     teammock.NewRepository(t),
		IDs:          id.NewSequence("xp"),
		Observer:     observer,
		Logger:       logging.NewNop(),
	})
	return service, extRepo, observer
}

func TestPlayImportService_ImportExternalPlays_FailingPlayDoesNotFailBatchUsingMockery(t *testing.T) {
	t.Parallel()

	service, extRepo, observer := newMockedService(t)
	extGame := external.Game{ID: "xg-1", ExternalID: "401520281", Source: external.SourceESPN}

	extRepo.
		On("GetGameByID", anyCtx, "xg-1").
		Return(extGame, true, nil).
		Once()
	extRepo.
		On("UpsertPlay", anyCtx, mock.MatchedBy(func(p external.Play) bool { return p.ExternalID == "5" })).
		Panic("payload exploded").
		Once()
	extRepo.
		On("UpsertPlay", anyCtx, mock.MatchedBy(func(p external.Play) bool { return p.ExternalID != "5" })).
		Return(func(_ context.Context, p external.Play) (external.Play, error) { return p, nil }).
		Times(9)

	summary, err := service.ImportExternalPlays(t.Context(), ImportPlaysInput{
		ExternalGameID: "xg-1",
		Plays:          rawPlays(10),
	})
	if err != nil {
		t.Fatalf("import plays: %v", err)
	}
	if summary.Imported != 9 || summary.Total != 10 || summary.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if !summary.Success {
		t.Fatalf("partial import should still report success")
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "payload exploded") {
		t.Fatalf("unexpected errors: %v", summary.Errors)
	}
	if summary.Message != "Imported 9 of 10 plays (1 failed)" {
		t.Fatalf("unexpected message: %q", summary.Message)
	}
	require.Equal(t, []observedPlays{{"espn", metrics.StageIngest, 9, 1}}, observer.plays)
}

func TestPlayImportService_ImportExternalPlays_StampsBackReferenceUsingMockery(t *testing.T) {
	t.Parallel()

	service, extRepo, _ := newMockedService(t)
	extRepo.
		On("GetGameByID", anyCtx, "401520281").
		Return(external.Game{}, false, nil).
		Once()
	extRepo.
		On("GetGameBySourceKey", anyCtx, external.SourceESPN, "401520281").
		Return(external.Game{ID: "xg-9", ExternalID: "401520281", Source: external.SourceESPN}, true, nil).
		Once()
	extRepo.
		On("UpsertPlay", anyCtx, mock.MatchedBy(func(p external.Play) bool {
			return p.ExternalGameID == "xg-9" && p.Source == external.SourceESPN && p.ExternalID == "2" && p.Sequence == 1 && p.ID == "xp-1"
		})).
		Return(external.Play{ID: "xp-1"}, nil).
		Once()

	plays := []map[string]any{{"id": "2", "text": "Pass complete for 6 yards"}}
	summary, err := service.ImportExternalPlays(t.Context(), ImportPlaysInput{
		ExternalGameID: "401520281",
		Source:         "ESPN",
		Plays:          plays,
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
}

func TestPlayImportService_ImportExternalPlays_RejectsBadInput(t *testing.T) {
	t.Parallel()

	service, extRepo, _ := newMockedService(t)

	_, err := service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: "xg-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}

	extRepo.
		On("GetGameByID", anyCtx, "missing").
		Return(external.Game{}, false, nil).
		Once()
	_, err = service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: "missing", Plays: rawPlays(1)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayImportService_ImportExternalPlays_AdapterErrorIsPerPlay(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": "g-1", "home": "Alabama", "away": "Georgia"})
	require.NoError(t, err)

	plays := rawPlays(3)
	plays[1] = map[string]any{"broken": true}
	summary, err := f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: plays})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
	require.Equal(t, 1, summary.Failed)
	require.Contains(t, summary.Errors[0], "play 2: map play")
}

func TestPlayImportService_ImportExternalGame_UpsertsByNaturalKey(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	first, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": "g-1", "home": "Alabama", "away": "Georgia", "season": 2024})
	require.NoError(t, err)

	second, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": "g-1", "home": "Alabama Crimson Tide", "away": "Georgia", "season": 2024})
	require.NoError(t, err)

	if first.ID != second.ID {
		t.Fatalf("re-import must keep the surrogate id: %s != %s", first.ID, second.ID)
	}
	if second.HomeTeam != "Alabama Crimson Tide" {
		t.Fatalf("neutral fields should refresh, got %q", second.HomeTeam)
	}
	if second.RawPayload["home"] != "Alabama" {
		t.Fatalf("raw payload must stay immutable, got %v", second.RawPayload["home"])
	}

	_, err = f.service.ImportExternalGame(t.Context(), "pff", map[string]any{"id": "g-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown source, got %v", err)
	}
	_, err = f.service.ImportExternalGame(t.Context(), "kaggle", map[string]any{"id": "g-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unregistered adapter, got %v", err)
	}
}

func TestPlayImportService_MapExternalGame_RequiresIDs(t *testing.T) {
	t.Parallel()

	service, _, _ := newMockedService(t)
	cases := []MapGameInput{
		{TeamID: "a", OpponentID: "b"},
		{ExternalGameID: "xg", OpponentID: "b"},
		{ExternalGameID: "xg", TeamID: "a"},
		{ExternalGameID: "xg", TeamID: "a", OpponentID: "a"},
	}
	for _, tc := range cases {
		if _, err := service.MapExternalGame(t.Context(), tc); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("MapExternalGame(%+v) err = %v, want ErrInvalidInput", tc, err)
		}
	}
}

func importSampleGame(t *testing.T, f memoryFixture, plays int) external.Game {
	t.Helper()

	kickoff := time.Date(2024, 9, 7, 23, 30, 0, 0, time.UTC)
	extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{
		"id": "g-1", "home": "Alabama", "away": "Georgia", "season": 2024, "date": kickoff,
	})
	require.NoError(t, err)
	_, err = f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: rawPlays(plays)})
	require.NoError(t, err)
	return extGame
}

func TestPlayImportService_MapExternalGame_IsIdempotent(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 3)
	input := MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia}

	first, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, 3, first.Mapped)
	require.Equal(t, 0, first.Skipped)
	require.True(t, first.Success)

	second, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, first.GameID, second.GameID)
	require.Equal(t, 0, second.Mapped)
	require.Equal(t, 3, second.Skipped)

	rows, err := f.playRepo.ListByGame(t.Context(), first.GameID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	stored, _, err := f.externalRepo.GetGameByID(t.Context(), extGame.ID)
	require.NoError(t, err)
	require.Equal(t, first.GameID, stored.MappedGameID)

	shell, ok, err := f.gameRepo.GetByID(t.Context(), first.GameID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 9, 7, 0, 0, 0, 0, time.UTC), shell.Date)
}

func TestPlayImportService_MapExternalGame_RecreatesDanglingPointer(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 3)
	input := MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia}

	first, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)

	rows, err := f.playRepo.ListByGame(t.Context(), first.GameID)
	require.NoError(t, err)
	f.playRepo.Delete(t.Context(), rows[0].ID)

	again, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, 1, again.Mapped)
	require.Equal(t, 2, again.Skipped)
}

func TestPlayImportService_MapExternalGame_CarriesStandardizedFields(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": "g-2", "home": "LSU", "away": "USC"})
	require.NoError(t, err)
	_, err = f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: []map[string]any{{
		"id":       "p-1",
		"text":     "QB sneak for 2 yards, TOUCHDOWN",
		"quarter":  4,
		"down":     4,
		"distance": 2,
		"yardLine": 2,
	}}})
	require.NoError(t, err)

	summary, err := f.service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDLSU, OpponentID: memory.TeamIDUSC})
	require.NoError(t, err)

	plays, err := f.service.ListGamePlays(t.Context(), summary.GameID)
	require.NoError(t, err)
	require.Len(t, plays, 1)
	p := plays[0]
	require.Equal(t, "p-1", p.ExternalPlayID)
	require.Equal(t, standard.PlayTypeRush, p.PlayType)
	require.True(t, p.IsFourthDown)
	require.True(t, p.IsGoalToGo)
	require.True(t, p.IsRedZone)
	require.NotNil(t, p.Result.Points)
	require.Equal(t, 6, *p.Result.Points)
}

func TestPlayImportService_MapExternalGame_UnknownTeam(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 1)

	_, err := f.service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: extGame.ID, TeamID: "nope", OpponentID: memory.TeamIDGeorgia})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing team, got %v", err)
	}
	_, err = f.service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: "missing", TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing external game, got %v", err)
	}
}

func TestPlayImportService_AutoMapExternalGame(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": "g-3", "home": "Bama", "away": "Zzyzx Qwv"})
	require.NoError(t, err)
	_, err = f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: rawPlays(2)})
	require.NoError(t, err)

	summary, err := f.service.AutoMapExternalGame(t.Context(), extGame.ID)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Mapped)
	require.NotNil(t, summary.Mapping)
	require.False(t, summary.Mapping.Resolved)
	require.Equal(t, team.MethodAlias, summary.Mapping.Home.Method)
	require.Equal(t, team.MethodUnresolved, summary.Mapping.Away.Method)

	shell, ok, err := f.gameRepo.GetByID(t.Context(), summary.GameID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, memory.TeamIDAlabama, shell.TeamID)
	require.Equal(t, team.UnknownTeamID, shell.OpponentID)

	require.Equal(t, []observedPlays{
		{"manual", metrics.StageIngest, 2, 0},
		{"manual", metrics.StageMap, 2, 0},
	}, f.observer.plays)
}

func TestPlayImportService_SyncFromProvider(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	f.service.registry.RegisterFeed(stubFeed{source: external.SourceESPN, games: map[string]ProviderGame{
		"401": {Game: map[string]any{"id": "401", "home": "Oregon", "away": "Ohio State"}, Plays: rawPlays(4)},
	}})

	out, err := f.service.SyncFromProvider(t.Context(), "espn", "401")
	require.NoError(t, err)
	require.Equal(t, "401", out.Game.ExternalID)
	require.Equal(t, 4, out.Plays.Imported)

	_, err = f.service.SyncFromProvider(t.Context(), "espn", "999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected provider not found to surface, got %v", err)
	}
	_, err = f.service.SyncFromProvider(t.Context(), "manual", "401")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a feed, got %v", err)
	}
}

func TestPlayImportService_StandardizePreview(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	out, err := f.service.StandardizePreview(t.Context(), "", []map[string]any{
		{"id": "1", "time": "Q2 7:45", "description": "Pass complete to the slot for 8 yards"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 2, out[0].Quarter)
	require.Equal(t, "7:45", out[0].Time)
	require.Equal(t, standard.PlayTypePass, out[0].PlayType)

	_, err = f.service.StandardizePreview(t.Context(), "", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayImportService_ListGamePlays_NotFound(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	if _, err := f.service.ListGamePlays(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayImportService_AutoMapExternalGame_UnresolvedGamesStayDistinct(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	kickoff := time.Date(2024, 9, 14, 19, 0, 0, 0, time.UTC)
	importGame := func(ref, home, away string) external.Game {
		extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{"id": ref, "home": home, "away": away, "date": kickoff})
		require.NoError(t, err)
		_, err = f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: rawPlays(2)})
		require.NoError(t, err)
		return extGame
	}
	gameA := importGame("g-a", "Zzyzx Qwv", "Xqzv Plrp")
	gameB := importGame("g-b", "Qwxz Vvrk", "Zxqj Wvvp")

	first, err := f.service.AutoMapExternalGame(t.Context(), gameA.ID)
	require.NoError(t, err)
	second, err := f.service.AutoMapExternalGame(t.Context(), gameB.ID)
	require.NoError(t, err)

	require.NotEqual(t, first.GameID, second.GameID)
	for extID, gameID := range map[string]string{gameA.ID: first.GameID, gameB.ID: second.GameID} {
		shell, ok, err := f.gameRepo.GetByID(t.Context(), gameID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, extID, shell.ExternalGameID)
		require.Equal(t, team.UnknownTeamID, shell.TeamID)

		rows, err := f.playRepo.ListByGame(t.Context(), gameID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
	}
}

func TestPlayImportService_MapExternalGame_RemapKeepsPlaysUnderGame(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 3)

	first, err := f.service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia})
	require.NoError(t, err)
	require.Equal(t, 3, first.Mapped)

	second, err := f.service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDLSU})
	require.NoError(t, err)
	require.Equal(t, first.GameID, second.GameID)
	require.Equal(t, 3, second.Skipped)

	shell, ok, err := f.gameRepo.GetByID(t.Context(), second.GameID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, memory.TeamIDLSU, shell.OpponentID)

	rows, err := f.playRepo.ListByGame(t.Context(), second.GameID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestPlayImportService_MapExternalGame_RecreatesPlayUnderAnotherGame(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 2)
	input := MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia}
	first, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)

	// The shell is gone and the external pointers still name its plays.
	f.gameRepo.Delete(t.Context(), first.GameID)

	again, err := f.service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.NotEqual(t, first.GameID, again.GameID)
	require.Equal(t, 2, again.Mapped)
	require.Equal(t, 0, again.Skipped)

	plays, err := f.externalRepo.ListPlaysByGame(t.Context(), extGame.ID)
	require.NoError(t, err)
	for _, p := range plays {
		row, ok, err := f.playRepo.GetByID(t.Context(), p.MappedPlayID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, again.GameID, row.GameID)
	}
}

// flakyPlayMapping fails the first n play pointer writes.
type flakyPlayMapping struct {
	*memory.ExternalRepository
	mu       sync.Mutex
	failures int
}

func (r *flakyPlayMapping) SetPlayMapping(ctx context.Context, id, mappedPlayID string) error {
	r.mu.Lock()
	fail := r.failures > 0
	if fail {
		r.failures--
	}
	r.mu.Unlock()
	if fail {
		return errors.New("connection reset")
	}
	return r.ExternalRepository.SetPlayMapping(ctx, id, mappedPlayID)
}

func TestPlayImportService_MapExternalGame_RelinksUnstampedPlay(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	extGame := importSampleGame(t, f, 3)

	flaky := &flakyPlayMapping{ExternalRepository: f.externalRepo, failures: 1}
	service := NewPlayImportService(PlayImportDeps{
		Registry:     NewAdapterRegistry(stubAdapter{source: external.SourceManual}),
		ExternalRepo: flaky,
		GameRepo:     f.gameRepo,
		PlayRepo:     f.playRepo,
		TeamRepo:     f.teamRepo,
		IDs:          id.NewSequence("rl"),
		Observer:     &spyObserver{},
		Logger:       logging.NewNop(),
	})
	input := MapGameInput{ExternalGameID: extGame.ID, TeamID: memory.TeamIDAlabama, OpponentID: memory.TeamIDGeorgia}

	first, err := service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, 2, first.Mapped)
	require.Equal(t, 1, first.Failed)
	require.Contains(t, first.Errors[0], "connection reset")

	again, err := service.MapExternalGame(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, 1, again.Mapped)
	require.Equal(t, 2, again.Skipped)
	require.Equal(t, 0, again.Failed)

	rows, err := f.playRepo.ListByGame(t.Context(), first.GameID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	plays, err := f.externalRepo.ListPlaysByGame(t.Context(), extGame.ID)
	require.NoError(t, err)
	for _, p := range plays {
		require.NotEmpty(t, p.MappedPlayID, "external play %s left unlinked", p.ExternalID)
	}
}

func TestPlayImportService_MapExternalGame_FailingPlayDoesNotFailBatchUsingMockery(t *testing.T) {
	t.Parallel()

	extRepo := externalmock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)
	playRepo := playmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	observer := &spyObserver{}
	service := NewPlayImportService(PlayImportDeps{
		Registry:     NewAdapterRegistry(stubAdapter{source: external.SourceESPN}),
		ExternalRepo: extRepo,
		GameRepo:     gameRepo,
		PlayRepo:     playRepo,
		TeamRepo:     teamRepo,
		IDs:          id.NewSequence("ip"),
		Observer:     observer,
		Logger:       logging.NewNop(),
	})

	kickoff := time.Date(2024, 9, 7, 23, 30, 0, 0, time.UTC)
	extGame := external.Game{ID: "xg-1", ExternalID: "401520281", Source: external.SourceESPN, Date: &kickoff}
	plays := make([]external.Play, 0, 10)
	for i := 1; i <= 10; i++ {
		plays = append(plays, external.Play{
			ID:             fmt.Sprintf("xp-%d", i),
			ExternalGameID: "xg-1",
			ExternalID:     strconv.Itoa(i),
			Source:         external.SourceESPN,
			Sequence:       i,
			Description:    "run up the middle for 3 yards",
		})
	}

	extRepo.On("GetGameByID", anyCtx, "xg-1").Return(extGame, true, nil).Once()
	teamRepo.On("GetByID", anyCtx, "t-home").Return(team.Team{ID: "t-home"}, true, nil).Once()
	teamRepo.On("GetByID", anyCtx, "t-away").Return(team.Team{ID: "t-away"}, true, nil).Once()
	gameRepo.
		On("UpsertByExternalGame", anyCtx, mock.MatchedBy(func(g game.Game) bool {
			return g.ExternalGameID == "xg-1" && g.TeamID == "t-home" && g.OpponentID == "t-away"
		})).
		Return(func(_ context.Context, g game.Game) (game.Game, error) { g.ID = "g-1"; return g, nil }).
		Once()
	extRepo.On("ListPlaysByGame", anyCtx, "xg-1").Return(plays, nil).Once()
	playRepo.On("GetByExternalID", anyCtx, "g-1", mock.Anything).Return(play.Play{}, false, nil).Times(10)
	playRepo.
		On("Create", anyCtx, mock.MatchedBy(func(p play.Play) bool { return p.ExternalPlayID == "5" })).
		Return(play.Play{}, errors.New("deadlock detected")).
		Once()
	playRepo.
		On("Create", anyCtx, mock.MatchedBy(func(p play.Play) bool { return p.ExternalPlayID != "5" })).
		Return(func(_ context.Context, p play.Play) (play.Play, error) { return p, nil }).
		Times(9)
	extRepo.
		On("SetPlayMapping", anyCtx, mock.MatchedBy(func(extPlayID string) bool { return extPlayID != "xp-5" }), mock.Anything).
		Return(nil).
		Times(9)
	extRepo.On("SetGameMapping", anyCtx, "xg-1", "g-1").Return(nil).Once()

	summary, err := service.MapExternalGame(t.Context(), MapGameInput{ExternalGameID: "xg-1", TeamID: "t-home", OpponentID: "t-away"})
	require.NoError(t, err)
	require.Equal(t, "g-1", summary.GameID)
	require.Equal(t, 9, summary.Mapped)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 10, summary.Total)
	require.True(t, summary.Success)
	require.Len(t, summary.Errors, 1)
	require.Contains(t, summary.Errors[0], "play 5: create play: deadlock detected")
	require.Equal(t, []observedPlays{{"espn", metrics.StageMap, 9, 1}}, observer.plays)
}
