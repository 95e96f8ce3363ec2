package external

import (
	"fmt"
	"strings"
	"time"
)

// Source tags the provider a record came from.
type Source string

const (
	SourceESPN            Source = "espn"
	SourceKaggle          Source = "kaggle"
	SourceSportsReference Source = "sports_reference"
	SourceNCAAAPI         Source = "ncaa_api"
	SourceManual          Source = "manual"
)

var knownSources = []Source{SourceESPN, SourceKaggle, SourceSportsReference, SourceNCAAAPI, SourceManual}

func Sources() []Source {
	return append([]Source(nil), knownSources...)
}

// ParseSource accepts the canonical tag plus a few spellings seen in request payloads.
func ParseSource(v string) (Source, error) {
	key := strings.ToLower(strings.TrimSpace(v))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "espn":
		return SourceESPN, nil
	case "kaggle", "kaggle_csv":
		return SourceKaggle, nil
	case "sports_reference", "sportsreference", "sportsref":
		return SourceSportsReference, nil
	case "ncaa_api", "ncaa":
		return SourceNCAAAPI, nil
	case "manual":
		return SourceManual, nil
	default:
		return "", fmt.Errorf("unknown source %q", v)
	}
}

// Payload is the untouched provider record.
type Payload map[string]any

// Game is one game as reported by one provider. Natural key is (Source, ExternalID).
type Game struct {
	ID           string
	ExternalID   string
	Source       Source
	Season       int
	Week         *int
	HomeTeam     string
	AwayTeam     string
	HomeScore    *int
	AwayScore    *int
	Date         *time.Time
	Venue        string
	RawPayload   Payload
	MappedGameID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (g Game) IsMapped() bool {
	return g.MappedGameID != ""
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ExternalID) == "" {
		return fmt.Errorf("external game id is required")
	}
	if g.Source == "" {
		return fmt.Errorf("external game source is required")
	}
	return nil
}

// Play is one play of an external game. Natural key is (ExternalGameID, ExternalID).
type Play struct {
	ID             string
	ExternalGameID string
	ExternalID     string
	Source         Source
	Sequence       int
	Quarter        int
	Time           string
	Down           *int
	Distance       *int
	YardLine       *int
	PlayType       string
	Description    string
	OffenseTeam    string
	DefenseTeam    string
	RawPayload     Payload
	MappedPlayID   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Play) IsMapped() bool {
	return p.MappedPlayID != ""
}

func (p Play) Validate() error {
	if strings.TrimSpace(p.ExternalGameID) == "" {
		return fmt.Errorf("external play game id is required")
	}
	if strings.TrimSpace(p.ExternalID) == "" {
		return fmt.Errorf("external play id is required")
	}
	return nil
}

// Record flattens the neutral play into the key set the standardizer reads.
// Values from the neutral shape win over anything left in the raw payload.
func (p Play) Record() map[string]any {
	out := make(map[string]any, len(p.RawPayload)+12)
	for k, v := range p.RawPayload {
		out[k] = v
	}

	out["id"] = p.ExternalID
	out["gameId"] = p.ExternalGameID
	if p.Quarter > 0 {
		out["quarter"] = p.Quarter
	}
	if p.Time != "" {
		out["time"] = p.Time
	}
	setOptional(out, "down", p.Down)
	setOptional(out, "distance", p.Distance)
	setOptional(out, "yardLine", p.YardLine)
	if p.PlayType != "" {
		out["playType"] = p.PlayType
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.OffenseTeam != "" {
		out["offense"] = p.OffenseTeam
	}
	if p.DefenseTeam != "" {
		out["defense"] = p.DefenseTeam
	}
	return out
}

func setOptional(out map[string]any, key string, v *int) {
	if v == nil {
		delete(out, key)
		return
	}
	out[key] = *v
}

func IntPtr(v int) *int {
	return &v
}
