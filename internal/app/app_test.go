package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/film-grading/internal/config"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/infrastructure/responsecache"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/metrics"
)

func TestNew_InMemory(t *testing.T) {
	cfg := config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "film-grading",
		HTTPAddr:           ":0",
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		ProviderCacheTTL:   time.Minute,
		CORSAllowedOrigins: []string{"*"},
		MaxBodyBytes:       1 << 20,
	}

	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RequiresAddr(t *testing.T) {
	_, err := New(context.Background(), config.Config{}, logging.NewNop())
	require.Error(t, err)
}

func TestBuildRegistry(t *testing.T) {
	cfg := config.Config{
		ESPN:              config.ProviderConfig{Enabled: true, BaseURL: "https://espn.example.test"},
		NCAA:              config.ProviderConfig{Enabled: false},
		SportsRef:         config.ProviderConfig{Enabled: true, BaseURL: "https://sr.example.test"},
		KaggleDatasetPath: t.TempDir(),
		ProviderCacheTTL:  time.Minute,
	}
	registry := buildRegistry(cfg, responsecache.NewMemory(time.Minute), metrics.New(), logging.NewNop())

	require.Len(t, registry.Sources(), len(external.Sources()))
	for _, src := range []external.Source{external.SourceESPN, external.SourceSportsReference, external.SourceKaggle} {
		_, err := registry.Feed(src)
		require.NoError(t, err, src)
	}
	_, err := registry.Feed(external.SourceNCAAAPI)
	require.Error(t, err)
}
