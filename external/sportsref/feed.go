package sportsref

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/riskibarqy/film-grading/external/feedhttp"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

const DefaultBaseURL = "https://www.sports-reference.com"

type Feed struct {
	client *feedhttp.Client
}

func NewFeed(client *feedhttp.Client) *Feed {
	return &Feed{client: client}
}

func (*Feed) Source() external.Source {
	return external.SourceSportsReference
}

// FetchGame loads /cfb/boxscores/<ref>.html, e.g. ref "2024-09-07-alabama".
func (f *Feed) FetchGame(ctx context.Context, ref string) (usecase.ProviderGame, error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), ".html")
	if ref == "" || strings.ContainsAny(ref, "/?#") {
		return usecase.ProviderGame{}, fmt.Errorf("%w: sports-reference boxscore id %q", usecase.ErrInvalidInput, ref)
	}

	body, err := f.client.Get(ctx, "/cfb/boxscores/"+ref+".html", nil)
	if err != nil {
		return usecase.ProviderGame{}, fmt.Errorf("fetch sports-reference boxscore=%s: %w", ref, err)
	}
	game, err := ParseBoxScore(bytes.NewReader(body), ref)
	if err != nil {
		return usecase.ProviderGame{}, fmt.Errorf("parse sports-reference boxscore=%s: %w", ref, err)
	}
	return game, nil
}

// ParseBoxScore extracts the scorebox and the play-by-play table. The pbp
// table is often shipped inside an HTML comment and parsed from there.
func ParseBoxScore(r io.Reader, ref string) (usecase.ProviderGame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return usecase.ProviderGame{}, err
	}

	game := scorebox(doc)
	game["id"] = ref

	table := doc.Find("table#pbp")
	if table.Length() == 0 {
		table = commentedTable(doc, "pbp")
	}
	return usecase.ProviderGame{Game: game, Plays: pbpRows(table)}, nil
}

func scorebox(doc *goquery.Document) map[string]any {
	game := map[string]any{}
	boxes := doc.Find("div.scorebox > div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("strong a").Length() > 0
	})
	// Visitor first, home second.
	prefixes := []string{"away", "home"}
	boxes.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= len(prefixes) {
			return false
		}
		if name := strings.TrimSpace(s.Find("strong a").First().Text()); name != "" {
			game[prefixes[i]+"_team"] = name
		}
		if score := strings.TrimSpace(s.Find("div.score").First().Text()); score != "" {
			game[prefixes[i]+"_score"] = score
		}
		return true
	})

	doc.Find("div.scorebox_meta > div").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		switch {
		case i == 0:
			game["date"] = text
		case strings.HasPrefix(text, "Stadium:"), strings.HasPrefix(text, "Venue:"):
			_, venue, _ := strings.Cut(text, ":")
			game["venue"] = strings.TrimSpace(venue)
		}
	})
	return game
}

func commentedTable(doc *goquery.Document, id string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("div#all_" + id).Contents().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) != "#comment" {
			return true
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(s.Nodes[0].Data))
		if err != nil {
			return true
		}
		if table := inner.Find("table#" + id); table.Length() > 0 {
			found = table
			return false
		}
		return true
	})
	if found == nil {
		return doc.Find("table#__none__")
	}
	return found
}

// pbpRows keeps one map per play row. Header repeats are dropped and the
// quarter carries forward when a row leaves it blank.
func pbpRows(table *goquery.Selection) []map[string]any {
	var out []map[string]any
	quarter := ""
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		row := map[string]any{}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			stat, ok := cell.Attr("data-stat")
			if !ok || stat == "" {
				return
			}
			if text := strings.TrimSpace(cell.Text()); text != "" {
				row[stat] = text
			}
		})
		if _, ok := row["detail"]; !ok {
			return
		}
		if q, ok := row["quarter"].(string); ok {
			quarter = q
		} else if quarter != "" {
			row["quarter"] = quarter
		}
		row["seq"] = strconv.Itoa(len(out) + 1)
		out = append(out, row)
	})
	return out
}
