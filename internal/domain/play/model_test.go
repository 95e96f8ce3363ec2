package play

import (
	"testing"

	"github.com/riskibarqy/film-grading/internal/domain/standard"
)

func TestFromStandard_RecomputesFlags(t *testing.T) {
	t.Parallel()

	down, distance, yardLine := 4, 3, 3
	sp := standard.Play{
		ID:       "x",
		GameID:   "g",
		Quarter:  4,
		Down:     &down,
		Distance: &distance,
		YardLine: &yardLine,
		PlayType: standard.PlayTypePass,
		// deliberately stale flags
		Flags: standard.Flags{IsThirdDown: true},
	}

	p := FromStandard("game-1", "xp-1", 7, sp)

	want := standard.ComputeFlags(&down, &distance, &yardLine)
	if p.Flags != want {
		t.Fatalf("flags = %+v, want %+v", p.Flags, want)
	}
	if !p.IsFourthDown || p.IsThirdDown || !p.IsGoalToGo || !p.IsRedZone {
		t.Fatalf("unexpected flags %+v", p.Flags)
	}
	if p.GameID != "game-1" || p.ExternalPlayID != "xp-1" || p.Sequence != 7 {
		t.Fatalf("unexpected linkage %+v", p)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := (Play{GameID: "g", PlayType: standard.PlayTypeRush}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Play{PlayType: standard.PlayTypeRush}).Validate(); err == nil {
		t.Fatalf("expected missing game id error")
	}
	if err := (Play{GameID: "g", PlayType: "SACK"}).Validate(); err == nil {
		t.Fatalf("expected unsupported play type error")
	}
}
