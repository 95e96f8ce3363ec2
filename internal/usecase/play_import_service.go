package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/game"
	"github.com/riskibarqy/film-grading/internal/domain/play"
	"github.com/riskibarqy/film-grading/internal/domain/standard"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/platform/id"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/metrics"
)

type ImportPlaysInput struct {
	ExternalGameID string
	Source         string
	Plays          []map[string]any
}

type ImportPlaysSummary struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
	Message  string   `json:"message"`
}

type MapGameInput struct {
	ExternalGameID string
	TeamID         string
	OpponentID     string
}

type MapGameSummary struct {
	Success bool                `json:"success"`
	GameID  string              `json:"game_id"`
	Mapped  int                 `json:"mapped"`
	Skipped int                 `json:"skipped"`
	Failed  int                 `json:"failed"`
	Total   int                 `json:"total"`
	Errors  []string            `json:"errors"`
	Message string              `json:"message"`
	Mapping *team.MappingResult `json:"mapping,omitempty"`
}

type SyncSummary struct {
	Game  external.Game      `json:"game"`
	Plays ImportPlaysSummary `json:"plays"`
}

type PlayImportDeps struct {
	Registry     *AdapterRegistry
	ExternalRepo external.Repository
	GameRepo     game.Repository
	PlayRepo     play.Repository
	TeamRepo     team.Repository
	Mapping      *TeamMappingService
	IDs          id.Generator
	Observer     ImportObserver
	Logger       *logging.Logger
}

// PlayImportService moves provider plays through the external, standardized
// and internal stages. Plays are processed one at a time; a failing play is
// reported and skipped without undoing the plays before it.
type PlayImportService struct {
	registry     *AdapterRegistry
	externalRepo external.Repository
	gameRepo     game.Repository
	playRepo     play.Repository
	teamRepo     team.Repository
	mapping      *TeamMappingService
	ids          id.Generator
	observer     ImportObserver
	logger       *logging.Logger
	now          func() time.Time
}

func NewPlayImportService(deps PlayImportDeps) *PlayImportService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ids := deps.IDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	mapping := deps.Mapping
	if mapping == nil {
		mapping = NewTeamMappingService(deps.TeamRepo, deps.ExternalRepo, logger)
	}
	registry := deps.Registry
	if registry == nil {
		registry = NewAdapterRegistry()
	}
	return &PlayImportService{
		registry:     registry,
		externalRepo: deps.ExternalRepo,
		gameRepo:     deps.GameRepo,
		playRepo:     deps.PlayRepo,
		teamRepo:     deps.TeamRepo,
		mapping:      mapping,
		ids:          ids,
		observer:     observerOrNoop(deps.Observer),
		logger:       logger,
		now:          time.Now,
	}
}

// ImportExternalGame maps a provider-native game and upserts it by (source, external id).
func (s *PlayImportService) ImportExternalGame(ctx context.Context, source string, raw map[string]any) (external.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.ImportExternalGame",
		attribute.String("source", source),
	)
	defer span.End()

	src, err := parseSource(source)
	if err != nil {
		return external.Game{}, err
	}
	if len(raw) == 0 {
		return external.Game{}, fmt.Errorf("%w: game payload is required", ErrInvalidInput)
	}
	adapter, err := s.registry.Adapter(src)
	if err != nil {
		return external.Game{}, err
	}

	mapped, err := adapter.MapGameToExternal(raw)
	if err != nil {
		return external.Game{}, fmt.Errorf("%w: map %s game: %v", ErrInvalidInput, src, err)
	}
	mapped.Source = src
	if err := mapped.Validate(); err != nil {
		return external.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if mapped.ID == "" {
		if mapped.ID, err = s.ids.NewID(); err != nil {
			return external.Game{}, fmt.Errorf("generate external game id: %w", err)
		}
	}

	stored, err := s.externalRepo.UpsertGame(ctx, mapped)
	if err != nil {
		return external.Game{}, fmt.Errorf("upsert external game: %w", err)
	}

	s.logger.InfoContext(ctx, "external game imported",
		"external_game_id", stored.ID,
		"source", stored.Source,
		"provider_game_id", stored.ExternalID,
		"home_team", stored.HomeTeam,
		"away_team", stored.AwayTeam,
	)
	return stored, nil
}

func (s *PlayImportService) GetExternalGame(ctx context.Context, externalGameID string) (external.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.GetExternalGame")
	defer span.End()

	return getExternalGame(ctx, s.externalRepo, externalGameID)
}

// ImportExternalPlays upserts a batch of provider plays under an existing
// external game. The batch keeps going when a single play fails; the summary
// carries the per-play errors.
func (s *PlayImportService) ImportExternalPlays(ctx context.Context, input ImportPlaysInput) (ImportPlaysSummary, error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.ImportExternalPlays",
		attribute.String("external_game_id", input.ExternalGameID),
		attribute.Int("plays", len(input.Plays)),
	)
	defer span.End()

	if len(input.Plays) == 0 {
		return ImportPlaysSummary{}, fmt.Errorf("%w: at least one play is required", ErrInvalidInput)
	}

	extGame, err := s.resolveExternalGame(ctx, input.ExternalGameID, input.Source)
	if err != nil {
		return ImportPlaysSummary{}, err
	}
	adapter, err := s.registry.Adapter(extGame.Source)
	if err != nil {
		return ImportPlaysSummary{}, err
	}

	summary := ImportPlaysSummary{Total: len(input.Plays), Errors: []string{}}
	for i, raw := range input.Plays {
		sequence := i + 1
		if err := s.importPlay(ctx, adapter, extGame, sequence, raw); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("play %d: %v", sequence, err))
			s.logger.WarnContext(ctx, "external play import failed",
				"external_game_id", extGame.ID,
				"sequence", sequence,
				"error", err,
			)
			continue
		}
		summary.Imported++
	}

	summary.Success = summary.Imported > 0
	summary.Message = batchMessage("Imported", summary.Imported, summary.Total, summary.Failed)
	s.observer.ObservePlays(string(extGame.Source), metrics.StageIngest, summary.Imported, summary.Failed)

	s.logger.InfoContext(ctx, "external plays imported",
		"external_game_id", extGame.ID,
		"source", extGame.Source,
		"imported", summary.Imported,
		"failed", summary.Failed,
		"total", summary.Total,
	)
	return summary, nil
}

// resolveExternalGame accepts either the stored id or, with a source, the provider's own game id.
func (s *PlayImportService) resolveExternalGame(ctx context.Context, externalGameID, source string) (external.Game, error) {
	externalGameID = strings.TrimSpace(externalGameID)
	if externalGameID == "" {
		return external.Game{}, fmt.Errorf("%w: external game id is required", ErrInvalidInput)
	}

	g, exists, err := s.externalRepo.GetGameByID(ctx, externalGameID)
	if err != nil {
		return external.Game{}, fmt.Errorf("get external game: %w", err)
	}
	if exists {
		return g, nil
	}

	if strings.TrimSpace(source) != "" {
		src, err := parseSource(source)
		if err != nil {
			return external.Game{}, err
		}
		g, exists, err = s.externalRepo.GetGameBySourceKey(ctx, src, externalGameID)
		if err != nil {
			return external.Game{}, fmt.Errorf("get external game by source key: %w", err)
		}
		if exists {
			return g, nil
		}
	}
	return external.Game{}, fmt.Errorf("%w: external game=%s", ErrNotFound, externalGameID)
}

func (s *PlayImportService) importPlay(ctx context.Context, adapter SourceAdapter, extGame external.Game, sequence int, raw map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	p, err := adapter.MapPlayToExternal(raw, extGame.ID)
	if err != nil {
		return fmt.Errorf("map play: %w", err)
	}
	p.ExternalGameID = extGame.ID
	p.Source = extGame.Source
	if p.Sequence <= 0 {
		p.Sequence = sequence
	}
	if strings.TrimSpace(p.ExternalID) == "" {
		p.ExternalID = strconv.Itoa(p.Sequence)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		if p.ID, err = s.ids.NewID(); err != nil {
			return fmt.Errorf("generate external play id: %w", err)
		}
	}

	if _, err := s.externalRepo.UpsertPlay(ctx, p); err != nil {
		return fmt.Errorf("upsert external play %s: %w", p.ExternalID, err)
	}
	return nil
}

// MapExternalGame imports an external game's plays as internal plays under
// the given teams. Plays whose mapping pointer still resolves to a play of
// this game are skipped, so re-runs never duplicate internal plays.
func (s *PlayImportService) MapExternalGame(ctx context.Context, input MapGameInput) (MapGameSummary, error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.MapExternalGame",
		attribute.String("external_game_id", input.ExternalGameID),
	)
	defer span.End()

	input.ExternalGameID = strings.TrimSpace(input.ExternalGameID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.OpponentID = strings.TrimSpace(input.OpponentID)
	if input.ExternalGameID == "" || input.TeamID == "" || input.OpponentID == "" {
		return MapGameSummary{}, fmt.Errorf("%w: external game id, team id and opponent id are required", ErrInvalidInput)
	}
	if input.TeamID == input.OpponentID && input.TeamID != team.UnknownTeamID {
		return MapGameSummary{}, fmt.Errorf("%w: team and opponent must differ", ErrInvalidInput)
	}

	extGame, err := getExternalGame(ctx, s.externalRepo, input.ExternalGameID)
	if err != nil {
		return MapGameSummary{}, err
	}
	if err := s.ensureTeam(ctx, input.TeamID); err != nil {
		return MapGameSummary{}, err
	}
	if err := s.ensureTeam(ctx, input.OpponentID); err != nil {
		return MapGameSummary{}, err
	}

	shell, err := s.gameShell(ctx, extGame, input.TeamID, input.OpponentID)
	if err != nil {
		return MapGameSummary{}, err
	}

	plays, err := s.externalRepo.ListPlaysByGame(ctx, extGame.ID)
	if err != nil {
		return MapGameSummary{}, fmt.Errorf("list external plays: %w", err)
	}

	summary := MapGameSummary{GameID: shell.ID, Total: len(plays), Errors: []string{}}
	for i, p := range plays {
		sequence := p.Sequence
		if sequence <= 0 {
			sequence = i + 1
		}
		skipped, err := s.mapPlay(ctx, shell.ID, sequence, p)
		switch {
		case err != nil:
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("play %s: %v", p.ExternalID, err))
			s.logger.WarnContext(ctx, "play mapping failed",
				"external_game_id", extGame.ID,
				"external_play_id", p.ExternalID,
				"error", err,
			)
		case skipped:
			summary.Skipped++
		default:
			summary.Mapped++
		}
	}

	if err := s.externalRepo.SetGameMapping(ctx, extGame.ID, shell.ID); err != nil {
		return MapGameSummary{}, fmt.Errorf("set game mapping: %w", err)
	}

	summary.Success = summary.Total == 0 || summary.Mapped+summary.Skipped > 0
	summary.Message = batchMessage("Mapped", summary.Mapped, summary.Total, summary.Failed)
	if summary.Skipped > 0 {
		summary.Message += fmt.Sprintf(", %d already mapped", summary.Skipped)
	}
	s.observer.ObservePlays(string(extGame.Source), metrics.StageMap, summary.Mapped, summary.Failed)

	s.logger.InfoContext(ctx, "external game mapped",
		"external_game_id", extGame.ID,
		"game_id", shell.ID,
		"mapped", summary.Mapped,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"total", summary.Total,
	)
	return summary, nil
}

// AutoMapExternalGame resolves the teams by name (home as team, away as
// opponent) and maps the game. An unresolved side lands on the unknown team.
func (s *PlayImportService) AutoMapExternalGame(ctx context.Context, externalGameID string) (MapGameSummary, error) {
	ctx = context.WithoutCancel(ctx)

	result, err := s.mapping.MapExternalGame(ctx, externalGameID)
	if err != nil {
		return MapGameSummary{}, err
	}

	teamID := firstNonEmpty(result.Home.TeamID, team.UnknownTeamID)
	opponentID := firstNonEmpty(result.Away.TeamID, team.UnknownTeamID)
	summary, err := s.MapExternalGame(ctx, MapGameInput{
		ExternalGameID: externalGameID,
		TeamID:         teamID,
		OpponentID:     opponentID,
	})
	if err != nil {
		return MapGameSummary{}, err
	}
	summary.Mapping = &result
	return summary, nil
}

func (s *PlayImportService) ensureTeam(ctx context.Context, teamID string) error {
	if teamID == team.UnknownTeamID {
		return nil
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}

// gameShell upserts the internal game owned by the external game. A re-map
// with other teams refreshes that same row, so mapped plays stay under it.
func (s *PlayImportService) gameShell(ctx context.Context, extGame external.Game, teamID, opponentID string) (game.Game, error) {
	kickoff := extGame.CreatedAt
	if extGame.Date != nil && !extGame.Date.IsZero() {
		kickoff = *extGame.Date
	}
	if kickoff.IsZero() {
		kickoff = s.now()
	}

	gameID, err := s.ids.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	shell := game.Game{
		ID:             gameID,
		TeamID:         teamID,
		OpponentID:     opponentID,
		Date:           game.DayKey(kickoff),
		Season:         extGame.Season,
		Week:           extGame.Week,
		Venue:          extGame.Venue,
		TeamScore:      extGame.HomeScore,
		OpponentScore:  extGame.AwayScore,
		Source:         string(extGame.Source),
		ExternalGameID: extGame.ID,
	}
	if err := shell.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.gameRepo.UpsertByExternalGame(ctx, shell)
	if err != nil {
		return game.Game{}, fmt.Errorf("upsert game: %w", err)
	}
	return stored, nil
}

func (s *PlayImportService) mapPlay(ctx context.Context, gameID string, sequence int, p external.Play) (skipped bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			skipped = false
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if p.MappedPlayID != "" {
		existing, exists, err := s.playRepo.GetByID(ctx, p.MappedPlayID)
		if err != nil {
			return false, fmt.Errorf("get mapped play: %w", err)
		}
		if exists && existing.GameID == gameID {
			return true, nil
		}
	}

	// A play created by an earlier run whose pointer was never stamped.
	existing, exists, err := s.playRepo.GetByExternalID(ctx, gameID, p.ExternalID)
	if err != nil {
		return false, fmt.Errorf("get play by external id: %w", err)
	}
	if exists {
		if err := s.externalRepo.SetPlayMapping(ctx, p.ID, existing.ID); err != nil {
			return false, fmt.Errorf("set play mapping: %w", err)
		}
		return false, nil
	}

	sp := standard.Standardize(p.Record(), string(p.Source))
	row := play.FromStandard(gameID, p.ExternalID, sequence, sp)
	if row.ID, err = s.ids.NewID(); err != nil {
		return false, fmt.Errorf("generate play id: %w", err)
	}
	if err := row.Validate(); err != nil {
		return false, err
	}

	created, err := s.playRepo.Create(ctx, row)
	if err != nil {
		return false, fmt.Errorf("create play: %w", err)
	}
	if err := s.externalRepo.SetPlayMapping(ctx, p.ID, created.ID); err != nil {
		return false, fmt.Errorf("set play mapping: %w", err)
	}
	return false, nil
}

// SyncFromProvider fetches one game from a provider feed and ingests it with its plays.
func (s *PlayImportService) SyncFromProvider(ctx context.Context, source, ref string) (SyncSummary, error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.SyncFromProvider",
		attribute.String("source", source),
		attribute.String("ref", ref),
	)
	defer span.End()

	src, err := parseSource(source)
	if err != nil {
		return SyncSummary{}, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return SyncSummary{}, fmt.Errorf("%w: provider game reference is required", ErrInvalidInput)
	}
	feed, err := s.registry.Feed(src)
	if err != nil {
		return SyncSummary{}, err
	}

	fetched, err := feed.FetchGame(ctx, ref)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("fetch %s game %s: %w", src, ref, err)
	}

	extGame, err := s.ImportExternalGame(ctx, string(src), fetched.Game)
	if err != nil {
		return SyncSummary{}, err
	}

	out := SyncSummary{Game: extGame, Plays: ImportPlaysSummary{Success: true, Errors: []string{}, Message: "No plays returned by provider"}}
	if len(fetched.Plays) == 0 {
		return out, nil
	}
	out.Plays, err = s.ImportExternalPlays(ctx, ImportPlaysInput{
		ExternalGameID: extGame.ID,
		Plays:          fetched.Plays,
	})
	if err != nil {
		return SyncSummary{}, err
	}
	return out, nil
}

// StandardizePreview runs the standardizer without persisting anything. With
// a source, each record goes through that source's adapter first.
func (s *PlayImportService) StandardizePreview(ctx context.Context, source string, plays []map[string]any) ([]standard.Play, error) {
	_, span := startUsecaseSpan(ctx, "usecase.PlayImportService.StandardizePreview")
	defer span.End()

	if len(plays) == 0 {
		return nil, fmt.Errorf("%w: at least one play is required", ErrInvalidInput)
	}

	var adapter SourceAdapter
	tag := string(external.SourceManual)
	if strings.TrimSpace(source) != "" {
		src, err := parseSource(source)
		if err != nil {
			return nil, err
		}
		if adapter, err = s.registry.Adapter(src); err != nil {
			return nil, err
		}
		tag = string(src)
	}

	out := make([]standard.Play, 0, len(plays))
	for i, raw := range plays {
		record := raw
		if adapter != nil {
			p, err := adapter.MapPlayToExternal(raw, "")
			if err != nil {
				return nil, fmt.Errorf("%w: play %d: %v", ErrInvalidInput, i+1, err)
			}
			record = p.Record()
		}
		out = append(out, standard.Standardize(record, tag))
	}
	return out, nil
}

func (s *PlayImportService) ListGamePlays(ctx context.Context, gameID string) ([]play.Play, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.ListGamePlays",
		attribute.String("game_id", gameID),
	)
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	_, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	items, err := s.playRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	return items, nil
}

func batchMessage(verb string, ok, total, failed int) string {
	msg := fmt.Sprintf("%s %d of %d plays", verb, ok, total)
	if failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", failed)
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
