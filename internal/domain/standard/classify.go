package standard

import (
	"regexp"
	"strings"
)

type keywordFamily struct {
	playType PlayType
	pattern  *regexp.Regexp
}

// Checked in order; the first family that matches wins.
var playTypeFamilies = []keywordFamily{
	{PlayTypeRush, regexp.MustCompile(`\b(rush|run|handoff|hand off)`)},
	{PlayTypePass, regexp.MustCompile(`\b(pass|throw|threw|completion|complete)`)},
	{PlayTypePunt, regexp.MustCompile(`\bpunt`)},
	{PlayTypeFieldGoal, regexp.MustCompile(`\bfield goal|\bfg\b`)},
	{PlayTypeKickoff, regexp.MustCompile(`\bkick ?off`)},
	{PlayTypeExtraPoint, regexp.MustCompile(`\bextra point|\bpat\b`)},
	{PlayTypeSafety, regexp.MustCompile(`\bsafety`)},
	{PlayTypePenalty, regexp.MustCompile(`\bpenalty`)},
	{PlayTypeTimeout, regexp.MustCompile(`\btime ?out`)},
	{PlayTypeChallenge, regexp.MustCompile(`\bchallenge`)},
}

// Classify resolves the play type from an explicit field and the description.
func Classify(explicit, description string) PlayType {
	if pt, ok := ParsePlayType(explicit); ok {
		return pt
	}
	if pt, ok := matchFamily(description); ok {
		return pt
	}
	if token := strings.ToUpper(strings.TrimSpace(explicit)); token != "" {
		if pt, ok := matchFamily(strings.NewReplacer("_", " ", "-", " ").Replace(token)); ok {
			return pt
		}
	}
	return PlayTypeRush
}

func matchFamily(text string) (PlayType, bool) {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, family := range playTypeFamilies {
		if family.pattern.MatchString(text) {
			return family.playType, true
		}
	}
	return "", false
}
