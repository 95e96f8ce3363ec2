package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/film-grading/internal/config"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cases := []config.Config{
		{UptraceEnabled: false, ServiceName: "film-grading", AppEnv: config.EnvDev},
		{UptraceEnabled: true, UptraceDSN: " ", ServiceName: "film-grading", AppEnv: config.EnvDev},
	}
	for _, cfg := range cases {
		shutdown, err := InitUptrace(cfg, logging.NewNop())
		if err != nil {
			t.Fatalf("init uptrace: %v", err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown uptrace: %v", err)
		}
	}
}

func TestUptraceDisabledReason(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		want string
	}{
		{config.Config{}, "UPTRACE_ENABLED=false"},
		{config.Config{UptraceEnabled: true}, "UPTRACE_DSN empty"},
		{config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}, ""},
	}
	for _, tt := range tests {
		if got := uptraceDisabledReason(tt.cfg); got != tt.want {
			t.Fatalf("uptraceDisabledReason(%+v)=%q want=%q", tt.cfg, got, tt.want)
		}
	}
}

func TestLogMirrorFor(t *testing.T) {
	if logMirrorFor(config.Config{UptraceLogsEnabled: false}) != nil {
		t.Fatalf("expected no mirror when log export is off")
	}
	if logMirrorFor(config.Config{UptraceLogsEnabled: true, ServiceVersion: "v1"}) == nil {
		t.Fatalf("expected mirror when log export is on")
	}
	if got := len(uptraceOptions(config.Config{UptraceDSN: "x"})); got != 5 {
		t.Fatalf("expected 5 uptrace options, got %d", got)
	}
}
