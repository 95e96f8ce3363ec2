package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/film-grading/internal/domain/quality"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

func TestValidationService_ValidateExternalGame(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	kickoff := time.Date(2024, 9, 7, 19, 0, 0, 0, time.UTC)
	extGame, err := f.service.ImportExternalGame(t.Context(), "manual", map[string]any{
		"id": "g-1", "home": "Alabama", "away": "Georgia", "season": 2024, "date": kickoff,
	})
	require.NoError(t, err)

	plays := rawPlays(3)
	plays[2]["quarter"] = 7
	_, err = f.service.ImportExternalPlays(t.Context(), ImportPlaysInput{ExternalGameID: extGame.ID, Plays: plays})
	require.NoError(t, err)

	service := NewValidationService(f.externalRepo, nil, f.observer, logging.NewNop())
	report, err := service.ValidateExternalGame(t.Context(), extGame.ID)
	require.NoError(t, err)

	require.True(t, report.GameValid)
	require.Equal(t, 3, report.TotalPlays)
	require.Equal(t, 3, report.ValidPlays)
	require.Equal(t, []string{"Play 3: quarter 7 outside 1-4"}, report.Issues)
	require.Equal(t, 100, report.OverallScore)
	require.Equal(t, quality.TierExcellent, report.Tier)
	require.Equal(t, []int{100}, f.observer.validations)
}

func TestValidationService_ValidateExternalGame_NotFound(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	service := NewValidationService(f.externalRepo, quality.NewValidator(), nil, logging.NewNop())

	if _, err := service.ValidateExternalGame(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
