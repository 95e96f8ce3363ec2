package team

import (
	"math"
	"strings"
)

type Method string

const (
	MethodExact        Method = "exact"
	MethodAbbreviation Method = "abbreviation"
	MethodAlias        Method = "alias"
	MethodFuzzy        Method = "fuzzy"
	MethodUnresolved   Method = "unresolved"
)

const (
	aliasConfidence = 0.95
	// FuzzyThreshold is the lowest similarity accepted as a fuzzy match.
	FuzzyThreshold = 0.6
)

// SideMatch is the resolution of one external team name.
type SideMatch struct {
	ExternalName string  `json:"externalName"`
	TeamID       string  `json:"teamId"`
	TeamName     string  `json:"teamName"`
	Method       Method  `json:"method"`
	Confidence   float64 `json:"confidence"`
}

func (s SideMatch) Resolved() bool {
	return s.Method != MethodUnresolved && s.TeamID != ""
}

// MappingResult pairs both sides of an external game with internal teams.
type MappingResult struct {
	Source     string    `json:"source"`
	Season     int       `json:"season"`
	Home       SideMatch `json:"home"`
	Away       SideMatch `json:"away"`
	Confidence float64   `json:"confidence"`
	Resolved   bool      `json:"resolved"`
}

type candidate struct {
	team    Team
	name    string
	aliases []string
}

// Matcher resolves free-text team names against a fixed team list.
type Matcher struct {
	candidates []candidate
}

func NewMatcher(teams []Team) *Matcher {
	m := &Matcher{candidates: make([]candidate, 0, len(teams))}
	for _, t := range teams {
		if t.IsUnknown() {
			continue
		}
		c := candidate{team: t, name: NormalizeName(t.Name)}
		for _, a := range t.Aliases {
			if n := NormalizeName(a); n != "" {
				c.aliases = append(c.aliases, n)
			}
		}
		m.candidates = append(m.candidates, c)
	}
	return m
}

// Match tries exact name, abbreviation, alias and finally fuzzy similarity.
// Ties keep the earliest team in list order.
func (m *Matcher) Match(externalName string) SideMatch {
	unresolved := SideMatch{ExternalName: externalName, Method: MethodUnresolved}
	trimmed := strings.TrimSpace(externalName)
	if trimmed == "" {
		return unresolved
	}
	normalized := NormalizeName(trimmed)

	for _, c := range m.candidates {
		if normalized != "" && normalized == c.name {
			return resolved(externalName, c.team, MethodExact, 1)
		}
	}
	for _, c := range m.candidates {
		if c.team.Abbreviation != "" && strings.EqualFold(trimmed, c.team.Abbreviation) {
			return resolved(externalName, c.team, MethodAbbreviation, 1)
		}
	}
	for _, c := range m.candidates {
		for _, a := range c.aliases {
			if normalized != "" && normalized == a {
				return resolved(externalName, c.team, MethodAlias, aliasConfidence)
			}
		}
	}

	best, bestScore := -1, 0.0
	for i, c := range m.candidates {
		score := Similarity(normalized, c.name)
		for _, a := range c.aliases {
			score = math.Max(score, Similarity(normalized, a))
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= FuzzyThreshold {
		return resolved(externalName, m.candidates[best].team, MethodFuzzy, math.Round(bestScore*100)/100)
	}
	return unresolved
}

// MapGame resolves both sides. When both land on the same team the weaker
// side is left unresolved so a game is never mapped against itself.
func (m *Matcher) MapGame(homeTeam, awayTeam string) MappingResult {
	home := m.Match(homeTeam)
	away := m.Match(awayTeam)

	if home.Resolved() && away.Resolved() && home.TeamID == away.TeamID {
		if away.Confidence > home.Confidence {
			home = SideMatch{ExternalName: homeTeam, Method: MethodUnresolved}
		} else {
			away = SideMatch{ExternalName: awayTeam, Method: MethodUnresolved}
		}
	}

	return MappingResult{
		Home:       home,
		Away:       away,
		Confidence: math.Min(home.Confidence, away.Confidence),
		Resolved:   home.Resolved() && away.Resolved(),
	}
}

func resolved(externalName string, t Team, method Method, confidence float64) SideMatch {
	return SideMatch{
		ExternalName: externalName,
		TeamID:       t.ID,
		TeamName:     t.Name,
		Method:       method,
		Confidence:   confidence,
	}
}

// Similarity of two normalized names in [0,1]: the larger of token Jaccard
// overlap and normalized edit-distance similarity.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return math.Max(jaccard(strings.Fields(a), strings.Fields(b)), editSimilarity(a, b))
}

func jaccard(a, b []string) float64 {
	set := make(map[string]int, len(a)+len(b))
	for _, t := range a {
		set[t] |= 1
	}
	for _, t := range b {
		set[t] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	both := 0
	for _, v := range set {
		if v == 3 {
			both++
		}
	}
	return float64(both) / float64(len(set))
}

func editSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
