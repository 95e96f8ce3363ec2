package standard

import (
	"regexp"
	"strconv"
	"strings"
)

type vocabEntry struct {
	label   string
	pattern *regexp.Regexp
}

var formations = []vocabEntry{
	{"Shotgun", regexp.MustCompile(`shotgun`)},
	{"Pistol", regexp.MustCompile(`pistol`)},
	{"I-Formation", regexp.MustCompile(`\bi[- ]formation`)},
	{"Single Wing", regexp.MustCompile(`single[- ]wing`)},
	{"Wildcat", regexp.MustCompile(`wildcat`)},
	{"Spread", regexp.MustCompile(`spread`)},
	{"Pro Set", regexp.MustCompile(`pro[- ]set`)},
	{"Wishbone", regexp.MustCompile(`wishbone`)},
	{"Veer", regexp.MustCompile(`\bveer\b`)},
	{"Flexbone", regexp.MustCompile(`flexbone`)},
}

var (
	personnelPattern = regexp.MustCompile(`\b(\d{2})\s*personnel`)
	blitzPattern     = regexp.MustCompile(`blitz|rush|pressure`)
	pressurePattern  = regexp.MustCompile(`pressure|hurr(y|ied|ies)|\bhit`)
	coverNPattern    = regexp.MustCompile(`\bcover[- ]?(\d)\b`)
)

var coverages = []vocabEntry{
	{"Man", regexp.MustCompile(`\bman\b`)},
	{"Zone", regexp.MustCompile(`\bzone\b`)},
	{"", coverNPattern},
	{"Quarters", regexp.MustCompile(`\bquarters\b`)},
	{"Dime", regexp.MustCompile(`\bdime\b`)},
	{"Nickel", regexp.MustCompile(`\bnickel\b`)},
	{"Prevent", regexp.MustCompile(`\bprevent\b`)},
}

func inferFormation(desc string) *string {
	for _, f := range formations {
		if f.pattern.MatchString(desc) {
			return optionalString(f.label)
		}
	}
	return nil
}

func inferPersonnel(desc string) *string {
	m := personnelPattern.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}
	return optionalString(m[1])
}

func inferCoverage(desc string) *string {
	for _, c := range coverages {
		m := c.pattern.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		if c.label == "" {
			return optionalString("Cover " + m[1])
		}
		return optionalString(c.label)
	}
	return nil
}

var (
	lossPattern       = regexp.MustCompile(`\bloss of (\d+)`)
	gainPattern       = regexp.MustCompile(`\bfor (-?\d+) (yard|yd)s?\b`)
	noGainPattern     = regexp.MustCompile(`\bno gain\b`)
	sackPattern       = regexp.MustCompile(`\bsack`)
	interceptPattern  = regexp.MustCompile(`\bintercept`)
	fumblePattern     = regexp.MustCompile(`\bfumble`)
	lostFumblePattern = regexp.MustCompile(`fumble.*\b(recovered by|lost)\b`)
	downsPattern      = regexp.MustCompile(`turnover on downs`)
	touchdownPattern  = regexp.MustCompile(`\btouchdown\b|\btd\b`)
	fieldGoalGood     = regexp.MustCompile(`(field goal|\bfg\b)[^.]*\bgood\b`)
	extraPointGood    = regexp.MustCompile(`(extra point|\bpat\b|\bkick\b)[^.]*\bgood\b`)
	noGoodPattern     = regexp.MustCompile(`\bno good\b`)
	safetyPattern     = regexp.MustCompile(`\bsafety\b`)
)

func inferYards(desc string) *int {
	if m := lossPattern.FindStringSubmatch(desc); m != nil {
		n, _ := strconv.Atoi(m[1])
		return intPtr(-n)
	}
	if m := gainPattern.FindStringSubmatch(desc); m != nil {
		n, _ := strconv.Atoi(m[1])
		return intPtr(n)
	}
	if noGainPattern.MatchString(desc) {
		return intPtr(0)
	}
	return nil
}

func inferPoints(desc string, playType PlayType) int {
	switch {
	case touchdownPattern.MatchString(desc):
		return 6
	case noGoodPattern.MatchString(desc):
		return 0
	case playType == PlayTypeFieldGoal && fieldGoalGood.MatchString(desc):
		return 3
	case playType == PlayTypeExtraPoint && extraPointGood.MatchString(desc):
		return 1
	case safetyPattern.MatchString(desc):
		return 2
	default:
		return 0
	}
}

// successPercent is the share of the distance a play must gain to count as a success on a given down.
func successPercent(down int) (int, bool) {
	switch down {
	case 1:
		return 40, true
	case 2:
		return 60, true
	case 3, 4:
		return 100, true
	default:
		return 0, false
	}
}

func inferSuccess(down, distance, yards *int) *bool {
	if down == nil || distance == nil || yards == nil {
		return nil
	}
	pct, ok := successPercent(*down)
	if !ok {
		return nil
	}
	return boolPtr(*yards*100 >= pct*(*distance))
}

func inferResult(raw map[string]any, desc string, playType PlayType, down, distance *int) Result {
	explicit, _ := raw["result"].(map[string]any)
	if explicit == nil {
		explicit = raw
	}

	res := Result{
		Yards:        lookupInt(explicit, "yards", "yards_gained", "yardsGained", "statYardage"),
		Success:      lookupBool(explicit, "success"),
		Points:       lookupInt(explicit, "points"),
		Turnover:     lookupBool(explicit, "turnover"),
		Sack:         lookupBool(explicit, "sack"),
		Interception: lookupBool(explicit, "interception"),
		Fumble:       lookupBool(explicit, "fumble"),
	}

	if desc != "" {
		if res.Yards == nil {
			res.Yards = inferYards(desc)
		}
		if res.Sack == nil {
			res.Sack = boolPtr(sackPattern.MatchString(desc))
		}
		if res.Interception == nil {
			res.Interception = boolPtr(interceptPattern.MatchString(desc))
		}
		if res.Fumble == nil {
			res.Fumble = boolPtr(fumblePattern.MatchString(desc))
		}
		if res.Turnover == nil {
			lost := *res.Interception || lostFumblePattern.MatchString(desc) || downsPattern.MatchString(desc)
			res.Turnover = boolPtr(lost)
		}
		if res.Points == nil {
			res.Points = intPtr(inferPoints(desc, playType))
		}
	}

	if res.Success == nil {
		res.Success = inferSuccess(down, distance, res.Yards)
	}
	return res
}

func inferBlitz(desc string) bool {
	return blitzPattern.MatchString(desc)
}

func inferPressure(desc string) bool {
	return pressurePattern.MatchString(desc)
}

func lower(s string) string {
	return strings.ToLower(s)
}
