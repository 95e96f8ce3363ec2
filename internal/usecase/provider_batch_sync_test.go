package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/film-grading/internal/domain/external"
)

func TestPlayImportService_SyncBatchFromProvider(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	f.service.registry.RegisterFeed(stubFeed{source: external.SourceESPN, games: map[string]ProviderGame{
		"401": {Game: map[string]any{"id": "401", "home": "Oregon", "away": "Ohio State"}, Plays: rawPlays(3)},
		"402": {Game: map[string]any{"id": "402", "home": "Alabama", "away": "Georgia"}, Plays: rawPlays(2)},
	}})

	out, err := f.service.SyncBatchFromProvider(t.Context(), BatchSyncInput{
		Source:   "espn",
		GameRefs: []string{"402", " 401 ", "999", "401", ""},
		Workers:  8,
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.SuccessCount)
	require.Equal(t, 1, out.FailedCount)
	require.Len(t, out.Results, 3)

	require.Equal(t, "401", out.Results[0].GameRef)
	require.Equal(t, 3, out.Results[0].Imported)
	require.Equal(t, "402", out.Results[1].GameRef)
	require.Equal(t, 2, out.Results[1].Imported)
	require.Equal(t, "999", out.Results[2].GameRef)
	require.Equal(t, batchStatusFailed, out.Results[2].Status)
	require.NotEmpty(t, out.Results[2].Message)
}

func TestPlayImportService_SyncBatchFromProvider_RejectsBadInput(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture()
	f.service.registry.RegisterFeed(stubFeed{source: external.SourceESPN})

	refs := make([]string, maxBatchSyncRefs+1)
	for i := range refs {
		refs[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	cases := []BatchSyncInput{
		{Source: "espn"},
		{Source: "espn", GameRefs: []string{" ", ""}},
		{Source: "espn", GameRefs: refs},
		{Source: "manual", GameRefs: []string{"1"}},
		{Source: "cbs", GameRefs: []string{"1"}},
	}
	for _, in := range cases {
		_, err := f.service.SyncBatchFromProvider(t.Context(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}
