package team

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var noiseTokens = map[string]struct{}{
	"the":        {},
	"of":         {},
	"university": {},
	"univ":       {},
	"college":    {},
}

var tokenRewrites = map[string]string{
	"state": "st",
	"saint": "st",
	"&":     "and",
}

// NormalizeName folds accents and case, drops punctuation and noise words,
// and collapses "State" to "St" so "The Ohio State University" becomes "ohio st".
func NormalizeName(name string) string {
	return strings.Join(nameTokens(name), " ")
}

func nameTokens(name string) []string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.ReplaceAll(folded, "&", " & "))

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&')
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if rewrite, ok := tokenRewrites[f]; ok {
			f = rewrite
		}
		if _, noise := noiseTokens[f]; noise {
			continue
		}
		out = append(out, f)
	}
	return out
}
