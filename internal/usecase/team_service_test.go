package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	externalmock "github.com/riskibarqy/film-grading/internal/mocks/domain/external"
	teammock "github.com/riskibarqy/film-grading/internal/mocks/domain/team"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

func mockTeams() []team.Team {
	return []team.Team{
		team.Unknown(),
		{ID: "t-uga", Name: "Georgia Bulldogs", Abbreviation: "UGA"},
		{ID: "t-ala", Name: "Alabama Crimson Tide", Abbreviation: "ALA", Aliases: []string{"Bama"}},
	}
}

func TestTeamMappingService_ListTeams_HidesPlaceholderUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamMappingService(teamRepo, externalmock.NewRepository(t), logging.NewNop())

	teamRepo.On("List", anyCtx).Return(mockTeams(), nil).Once()

	got, err := service.ListTeams(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t-ala" || got[1].ID != "t-uga" {
		t.Fatalf("unexpected teams: %+v", got)
	}
}

func TestTeamMappingService_MapGameToTeamsUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamMappingService(teamRepo, externalmock.NewRepository(t), logging.NewNop())

	teamRepo.On("List", anyCtx).Return(mockTeams(), nil).Once()

	got, err := service.MapGameToTeams(t.Context(), MapTeamsInput{HomeTeam: " Bama ", AwayTeam: "UGA", Source: "espn", Season: 2024})
	if err != nil {
		t.Fatalf("map game: %v", err)
	}
	if !got.Resolved || got.Home.TeamID != "t-ala" || got.Away.TeamID != "t-uga" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.Confidence != 0.95 || got.Source != "espn" || got.Season != 2024 {
		t.Fatalf("unexpected mapping metadata: %+v", got)
	}
}

func TestTeamMappingService_MapExternalGameUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	extRepo := externalmock.NewRepository(t)
	service := NewTeamMappingService(teamRepo, extRepo, logging.NewNop())

	extRepo.
		On("GetGameByID", anyCtx, "xg-1").
		Return(external.Game{ID: "xg-1", Source: external.SourceKaggle, HomeTeam: "Alabama Crimson Tide", AwayTeam: "Somewhere"}, true, nil).
		Once()
	extRepo.
		On("GetGameByID", anyCtx, "missing").
		Return(external.Game{}, false, nil).
		Once()
	teamRepo.On("List", anyCtx).Return(mockTeams(), nil).Once()

	got, err := service.MapExternalGame(t.Context(), "xg-1")
	if err != nil {
		t.Fatalf("map external game: %v", err)
	}
	if got.Resolved || got.Home.Method != team.MethodExact || got.Away.Method != team.MethodUnresolved {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.Confidence != 0 {
		t.Fatalf("overall confidence is the weaker side, got %v", got.Confidence)
	}

	if _, err := service.MapExternalGame(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.MapExternalGame(t.Context(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamMappingService_ListTeams_PropagatesStoreErrorUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamMappingService(teamRepo, externalmock.NewRepository(t), logging.NewNop())

	boom := errors.New("connection reset")
	teamRepo.On("List", anyCtx).Return(nil, boom).Once()

	if _, err := service.ListTeams(t.Context()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
