package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/film-grading/internal/platform/id"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

// stubAdapter reads a tiny neutral-ish payload: id, home, away, season, date
// for games and id, text, quarter, down, distance, yardLine for plays.
type stubAdapter struct {
	source external.Source
}

func (a stubAdapter) Source() external.Source { return a.source }

func (a stubAdapter) MapGameToExternal(raw map[string]any) (external.Game, error) {
	externalID, _ := raw["id"].(string)
	if externalID == "" {
		return external.Game{}, errors.New("game id missing")
	}
	g := external.Game{ExternalID: externalID, Source: a.source, RawPayload: raw}
	g.HomeTeam, _ = raw["home"].(string)
	g.AwayTeam, _ = raw["away"].(string)
	g.Season, _ = raw["season"].(int)
	if d, ok := raw["date"].(time.Time); ok {
		g.Date = &d
	}
	return g, nil
}

func (a stubAdapter) MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error) {
	if _, ok := raw["broken"]; ok {
		return external.Play{}, errors.New("unreadable play")
	}
	p := external.Play{ExternalGameID: externalGameID, Source: a.source, RawPayload: raw}
	p.ExternalID, _ = raw["id"].(string)
	p.Description, _ = raw["text"].(string)
	p.Quarter, _ = raw["quarter"].(int)
	if v, ok := raw["down"].(int); ok {
		p.Down = external.IntPtr(v)
	}
	if v, ok := raw["distance"].(int); ok {
		p.Distance = external.IntPtr(v)
	}
	if v, ok := raw["yardLine"].(int); ok {
		p.YardLine = external.IntPtr(v)
	}
	return p, nil
}

type stubFeed struct {
	source external.Source
	games  map[string]ProviderGame
}

func (f stubFeed) Source() external.Source { return f.source }

func (f stubFeed) FetchGame(_ context.Context, ref string) (ProviderGame, error) {
	g, ok := f.games[ref]
	if !ok {
		return ProviderGame{}, fmt.Errorf("%w: upstream 404 for %s", ErrNotFound, ref)
	}
	return g, nil
}

type observedPlays struct {
	source, stage    string
	imported, failed int
}

type spyObserver struct {
	mu          sync.Mutex
	plays       []observedPlays
	validations []int
}

func (s *spyObserver) ObservePlays(source, stage string, imported, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays = append(s.plays, observedPlays{source, stage, imported, failed})
}

func (s *spyObserver) ObserveValidation(_ string, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validations = append(s.validations, score)
}

type memoryFixture struct {
	externalRepo *memory.ExternalRepository
	gameRepo     *memory.GameRepository
	playRepo     *memory.PlayRepository
	teamRepo     *memory.TeamRepository
	observer     *spyObserver
	service      *PlayImportService
}

func newMemoryFixture() memoryFixture {
	f := memoryFixture{
		externalRepo: memory.NewExternalRepository(),
		gameRepo:     memory.NewGameRepository(),
		playRepo:     memory.NewPlayRepository(),
		teamRepo:     memory.NewTeamRepository(memory.SeedTeams()),
		observer:     &spyObserver{},
	}
	registry := NewAdapterRegistry(stubAdapter{source: external.SourceManual}, stubAdapter{source: external.SourceESPN})
	f.service = NewPlayImportService(PlayImportDeps{
		Registry:     registry,
		ExternalRepo: f.externalRepo,
		GameRepo:     f.gameRepo,
		PlayRepo:     f.playRepo,
		TeamRepo:     f.teamRepo,
		IDs:          id.NewSequence("id"),
		Observer:     f.observer,
		Logger:       logging.NewNop(),
	})
	return f
}

func rawPlays(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"id":       fmt.Sprintf("%d", i),
			"text":     fmt.Sprintf("Play %d run up the middle for 3 yards", i),
			"quarter":  1,
			"down":     1,
			"distance": 10,
			"yardLine": 75,
		})
	}
	return out
}
