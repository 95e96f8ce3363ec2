package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

type MapTeamsInput struct {
	HomeTeam string
	AwayTeam string
	Source   string
	Season   int
}

// TeamMappingService resolves external team names to internal teams.
type TeamMappingService struct {
	teamRepo     team.Repository
	externalRepo external.Repository
	logger       *logging.Logger
}

func NewTeamMappingService(teamRepo team.Repository, externalRepo external.Repository, logger *logging.Logger) *TeamMappingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamMappingService{
		teamRepo:     teamRepo,
		externalRepo: externalRepo,
		logger:       logger,
	}
}

func (s *TeamMappingService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamMappingService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(items))
	for _, t := range items {
		if !t.IsUnknown() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MapGameToTeams never fails because a side is unknown; that side is reported unresolved.
func (s *TeamMappingService) MapGameToTeams(ctx context.Context, input MapTeamsInput) (team.MappingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamMappingService.MapGameToTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return team.MappingResult{}, fmt.Errorf("list teams: %w", err)
	}

	result := team.NewMatcher(teams).MapGame(strings.TrimSpace(input.HomeTeam), strings.TrimSpace(input.AwayTeam))
	result.Source = input.Source
	result.Season = input.Season

	if !result.Resolved {
		s.logger.InfoContext(ctx, "team mapping left a side unresolved",
			"source", input.Source,
			"home_team", input.HomeTeam,
			"home_method", result.Home.Method,
			"away_team", input.AwayTeam,
			"away_method", result.Away.Method,
		)
	}
	return result, nil
}

// MapExternalGame runs the matcher for a stored external game.
func (s *TeamMappingService) MapExternalGame(ctx context.Context, externalGameID string) (team.MappingResult, error) {
	game, err := getExternalGame(ctx, s.externalRepo, externalGameID)
	if err != nil {
		return team.MappingResult{}, err
	}
	return s.MapGameToTeams(ctx, MapTeamsInput{
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		Source:   string(game.Source),
		Season:   game.Season,
	})
}

func getExternalGame(ctx context.Context, repo external.Repository, externalGameID string) (external.Game, error) {
	externalGameID = strings.TrimSpace(externalGameID)
	if externalGameID == "" {
		return external.Game{}, fmt.Errorf("%w: external game id is required", ErrInvalidInput)
	}

	game, exists, err := repo.GetGameByID(ctx, externalGameID)
	if err != nil {
		return external.Game{}, fmt.Errorf("get external game: %w", err)
	}
	if !exists {
		return external.Game{}, fmt.Errorf("%w: external game=%s", ErrNotFound, externalGameID)
	}
	return game, nil
}
