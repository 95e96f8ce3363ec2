package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/film-grading/internal/config"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	if srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop()); srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}
	if err := StopPprofServer(t.Context(), nil, nil); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}

func TestPprofMuxServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: config.EnvStage, ServiceName: "film-grading", ServiceVersion: "1.4.0"})
	if tags["env"] != "stage" || tags["service"] != "film-grading" || tags["version"] != "1.4.0" {
		t.Fatalf("unexpected tags: %#v", tags)
	}
}

func TestPyroscopeConfig(t *testing.T) {
	got := pyroscopeConfig(config.Config{
		AppEnv:                 config.EnvProd,
		ServiceName:            "film-grading",
		PyroscopeAppName:       "film-grading-api",
		PyroscopeServerAddress: "https://profiles.example.test",
	})
	if got.ApplicationName != "film-grading-api" || got.ServerAddress != "https://profiles.example.test" {
		t.Fatalf("unexpected pyroscope config: %+v", got)
	}
	if len(got.ProfileTypes) != len(profileTypes) || got.Tags["version"] != "" {
		t.Fatalf("unexpected profile setup: %+v", got)
	}
}
