package kaggle

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/riskibarqy/film-grading/external/payload"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

// Dataset serves games out of local CSV files. Path may be one file or a
// directory of *.csv files.
type Dataset struct {
	path string
}

func NewDataset(path string) *Dataset {
	return &Dataset{path: strings.TrimSpace(path)}
}

func (*Dataset) Source() external.Source {
	return external.SourceKaggle
}

// FetchGame collects every row with game_id == ref. The game record is the
// first row with the final running score.
func (d *Dataset) FetchGame(ctx context.Context, ref string) (usecase.ProviderGame, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return usecase.ProviderGame{}, fmt.Errorf("%w: kaggle game_id is required", usecase.ErrInvalidInput)
	}
	if d.path == "" {
		return usecase.ProviderGame{}, fmt.Errorf("%w: kaggle dataset path is not configured", usecase.ErrDependencyUnavailable)
	}

	files, err := d.files()
	if err != nil {
		return usecase.ProviderGame{}, err
	}

	var plays []map[string]any
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return usecase.ProviderGame{}, err
		}
		rows, err := readFile(file, ref)
		if err != nil {
			return usecase.ProviderGame{}, err
		}
		plays = append(plays, rows...)
	}
	if len(plays) == 0 {
		return usecase.ProviderGame{}, fmt.Errorf("%w: kaggle game_id=%s", usecase.ErrNotFound, ref)
	}
	return usecase.ProviderGame{Game: gameRow(plays), Plays: plays}, nil
}

func (d *Dataset) files() ([]string, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: kaggle dataset %s: %v", usecase.ErrDependencyUnavailable, d.path, err)
	}
	if !info.IsDir() {
		return []string{d.path}, nil
	}
	files, err := filepath.Glob(filepath.Join(d.path, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list kaggle dataset %s: %w", d.path, err)
	}
	sort.Strings(files)
	return files, nil
}

func readFile(path, gameID string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kaggle file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, gameID)
	if err != nil {
		return nil, fmt.Errorf("read kaggle file %s: %w", path, err)
	}
	return rows, nil
}

// ReadRows parses a CSV with a header line into row maps. A non-empty gameID
// keeps only matching rows.
func ReadRows(r io.Reader, gameID string) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(header))
	gameCol := -1
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if columns[i] == "game_id" {
			gameCol = i
		}
	}

	var out []map[string]any
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if gameID != "" && (gameCol < 0 || gameCol >= len(record) || strings.TrimSpace(record[gameCol]) != gameID) {
			continue
		}
		row := make(map[string]any, len(columns))
		for i, name := range columns {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		out = append(out, row)
	}
}

func gameRow(plays []map[string]any) map[string]any {
	first := plays[0]
	game := map[string]any{}
	for _, key := range []string{"game_id", "home_team", "away_team", "season", "week", "game_date", "stadium", "game_stadium", "home_score", "away_score"} {
		if v, ok := first[key]; ok {
			game[key] = v
		}
	}
	if _, ok := game["home_score"]; !ok {
		if v, ok := maxInt(plays, "total_home_score"); ok {
			game["home_score"] = v
		}
	}
	if _, ok := game["away_score"]; !ok {
		if v, ok := maxInt(plays, "total_away_score"); ok {
			game["away_score"] = v
		}
	}
	return game
}

func maxInt(rows []map[string]any, key string) (int, bool) {
	best, found := 0, false
	for _, row := range rows {
		if v, ok := payload.Int(row, key); ok && (!found || v > best) {
			best, found = v, true
		}
	}
	return best, found
}
