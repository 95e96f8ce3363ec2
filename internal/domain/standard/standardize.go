package standard

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	idKeys          = []string{"id", "externalId", "external_id", "play_id"}
	gameIDKeys      = []string{"gameId", "game_id", "externalGameId"}
	quarterKeys     = []string{"quarter", "period", "qtr"}
	timeKeys        = []string{"time", "clock"}
	downKeys        = []string{"down"}
	distanceKeys    = []string{"distance", "ydstogo"}
	yardLineKeys    = []string{"yardLine", "yard_line", "yardline_100"}
	playTypeKeys    = []string{"playType", "play_type", "type"}
	descriptionKeys = []string{"description", "desc", "text"}
	offenseKeys     = []string{"offense", "offenseTeam", "offense_team", "posteam"}
	defenseKeys     = []string{"defense", "defenseTeam", "defense_team", "defteam"}
)

var (
	quarterPrefixPattern = regexp.MustCompile(`(?i)^\s*Q(\d+)\s+(.+)$`)
	quarterSuffixPattern = regexp.MustCompile(`(?i)^\s*(\d+)Q\s+(.+)$`)
)

// Standardize maps a loosely typed play record onto Play. It never fails:
// missing or malformed fields become nil or their defaults.
func Standardize(raw map[string]any, source string) Play {
	if raw == nil {
		raw = map[string]any{}
	}

	quarter, clock := ParseClock(raw)
	description := lookupString(raw, descriptionKeys...)
	desc := lower(description)
	down := lookupInt(raw, downKeys...)
	distance := lookupInt(raw, distanceKeys...)
	yardLine := lookupInt(raw, yardLineKeys...)
	playType := Classify(lookupString(raw, playTypeKeys...), description)

	p := Play{
		ID:          lookupString(raw, idKeys...),
		GameID:      lookupString(raw, gameIDKeys...),
		Source:      source,
		Quarter:     quarter,
		Time:        clock,
		Down:        down,
		Distance:    distance,
		YardLine:    yardLine,
		PlayType:    playType,
		Description: description,
		Offense:     lookupString(raw, offenseKeys...),
		Defense:     lookupString(raw, defenseKeys...),
		Result:      inferResult(raw, desc, playType, down, distance),
		Formation:   optionalString(lookupString(raw, "formation", "offense_formation")),
		Personnel:   optionalString(lookupString(raw, "personnel", "offense_personnel")),
		Blitz:       lookupBool(raw, "blitz"),
		Pressure:    lookupBool(raw, "pressure"),
		Coverage:    optionalString(lookupString(raw, "coverage", "defense_coverage_type")),
	}

	if p.Formation == nil {
		p.Formation = inferFormation(desc)
	}
	if p.Personnel == nil {
		p.Personnel = inferPersonnel(desc)
	}
	if p.Blitz == nil {
		p.Blitz = boolPtr(inferBlitz(desc))
	}
	if p.Pressure == nil {
		p.Pressure = boolPtr(inferPressure(desc))
	}
	if p.Coverage == nil {
		p.Coverage = inferCoverage(desc)
	}

	p.Flags = ComputeFlags(p.Down, p.Distance, p.YardLine)
	return p
}

// ParseClock reads the quarter and game clock from either separate fields or a
// combined "Q2 7:45" / "2Q 7:45" string. An unparseable quarter defaults to 1
// and the time string is passed through unchanged.
func ParseClock(raw map[string]any) (int, string) {
	clock := lookupRawString(raw, timeKeys...)
	explicit := lookupInt(raw, quarterKeys...)

	combinedQuarter, combinedClock, combined := splitCombinedClock(clock)
	if combined {
		clock = combinedClock
	}

	switch {
	case explicit != nil:
		return *explicit, clock
	case combined:
		return combinedQuarter, clock
	default:
		return 1, clock
	}
}

func splitCombinedClock(v string) (int, string, bool) {
	for _, pattern := range []*regexp.Regexp{quarterPrefixPattern, quarterSuffixPattern} {
		m := pattern.FindStringSubmatch(v)
		if m == nil {
			continue
		}
		q, err := strconv.Atoi(m[1])
		if err != nil || q < 1 {
			continue
		}
		return q, strings.TrimSpace(m[2]), true
	}
	return 0, "", false
}
