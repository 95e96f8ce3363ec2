package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/quality"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

// ImportObserver receives pipeline counters. The metrics package satisfies it.
type ImportObserver interface {
	ObservePlays(source, stage string, imported, failed int)
	ObserveValidation(source string, score int)
}

type noopObserver struct{}

func (noopObserver) ObservePlays(string, string, int, int) {}
func (noopObserver) ObserveValidation(string, int)         {}

func observerOrNoop(o ImportObserver) ImportObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}

type ValidationService struct {
	externalRepo external.Repository
	validator    *quality.Validator
	observer     ImportObserver
	logger       *logging.Logger
}

func NewValidationService(externalRepo external.Repository, validator *quality.Validator, observer ImportObserver, logger *logging.Logger) *ValidationService {
	if validator == nil {
		validator = quality.NewValidator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ValidationService{
		externalRepo: externalRepo,
		validator:    validator,
		observer:     observerOrNoop(observer),
		logger:       logger,
	}
}

// ValidateExternalGame scores a stored external game. Data problems land in the
// report; only lookups fail.
func (s *ValidationService) ValidateExternalGame(ctx context.Context, externalGameID string) (quality.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.ValidateExternalGame",
		attribute.String("external_game_id", externalGameID),
	)
	defer span.End()

	game, err := getExternalGame(ctx, s.externalRepo, externalGameID)
	if err != nil {
		return quality.Report{}, err
	}
	plays, err := s.externalRepo.ListPlaysByGame(ctx, game.ID)
	if err != nil {
		return quality.Report{}, fmt.Errorf("list external plays: %w", err)
	}

	report := s.validator.Validate(game, plays)
	s.observer.ObserveValidation(report.Source, report.OverallScore)
	s.logger.InfoContext(ctx, "external game validated",
		"external_game_id", game.ID,
		"source", game.Source,
		"score", report.OverallScore,
		"tier", report.Tier,
		"issues", len(report.Issues),
		"warnings", len(report.Warnings),
	)
	return report, nil
}
