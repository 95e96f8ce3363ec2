package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	qb "github.com/riskibarqy/film-grading/internal/platform/querybuilder"
)

var keepOnUpsert = []string{"raw_payload", "created_at"}

type ExternalRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewExternalRepository(db *sqlx.DB) *ExternalRepository {
	return &ExternalRepository{db: db, now: time.Now}
}

func (r *ExternalRepository) UpsertGame(ctx context.Context, game external.Game) (external.Game, error) {
	if err := game.Validate(); err != nil {
		return external.Game{}, err
	}
	insertModel, err := externalGameInsert(game, r.now().UTC())
	if err != nil {
		return external.Game{}, fmt.Errorf("encode external game payload: %w", err)
	}

	query, args, err := qb.UpsertModel("external_games", insertModel, []string{"source", "external_id"}, keepOnUpsert, "*")
	if err != nil {
		return external.Game{}, fmt.Errorf("build upsert external game query: %w", err)
	}

	var row externalGameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return external.Game{}, fmt.Errorf("upsert external game %s/%s: %w", game.Source, game.ExternalID, err)
	}
	return toExternalGame(row)
}

func (r *ExternalRepository) GetGameByID(ctx context.Context, id string) (external.Game, bool, error) {
	return r.getGame(ctx, "get external game by id", qb.Eq("id", id))
}

func (r *ExternalRepository) GetGameBySourceKey(ctx context.Context, source external.Source, externalID string) (external.Game, bool, error) {
	return r.getGame(ctx, "get external game by source key", qb.Eq("source", string(source)), qb.Eq("external_id", externalID))
}

func (r *ExternalRepository) getGame(ctx context.Context, op string, conditions ...qb.Condition) (external.Game, bool, error) {
	query, args, err := qb.Select("*").From("external_games").Where(conditions...).Limit(1).ToSQL()
	if err != nil {
		return external.Game{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row externalGameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return external.Game{}, false, nil
		}
		return external.Game{}, false, fmt.Errorf("%s: %w", op, err)
	}
	game, err := toExternalGame(row)
	if err != nil {
		return external.Game{}, false, err
	}
	return game, true, nil
}

func (r *ExternalRepository) SetGameMapping(ctx context.Context, id, mappedGameID string) error {
	return r.setMapping(ctx, "external_games", "mapped_game_id", id, mappedGameID)
}

func (r *ExternalRepository) UpsertPlay(ctx context.Context, play external.Play) (external.Play, error) {
	if err := play.Validate(); err != nil {
		return external.Play{}, err
	}
	insertModel, err := externalPlayInsert(play, r.now().UTC())
	if err != nil {
		return external.Play{}, fmt.Errorf("encode external play payload: %w", err)
	}

	query, args, err := qb.UpsertModel("external_plays", insertModel, []string{"external_game_id", "external_id"}, keepOnUpsert, "*")
	if err != nil {
		return external.Play{}, fmt.Errorf("build upsert external play query: %w", err)
	}

	var row externalPlayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return external.Play{}, fmt.Errorf("upsert external play %s/%s: %w", play.ExternalGameID, play.ExternalID, err)
	}
	return toExternalPlay(row)
}

func (r *ExternalRepository) ListPlaysByGame(ctx context.Context, externalGameID string) ([]external.Play, error) {
	query, args, err := qb.Select("*").
		From("external_plays").
		Where(qb.Eq("external_game_id", externalGameID)).
		OrderBy("sequence", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list external plays query: %w", err)
	}

	var rows []externalPlayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list external plays: %w", err)
	}

	out := make([]external.Play, 0, len(rows))
	for _, row := range rows {
		play, err := toExternalPlay(row)
		if err != nil {
			return nil, err
		}
		out = append(out, play)
	}
	return out, nil
}

func (r *ExternalRepository) SetPlayMapping(ctx context.Context, id, mappedPlayID string) error {
	return r.setMapping(ctx, "external_plays", "mapped_play_id", id, mappedPlayID)
}

func (r *ExternalRepository) setMapping(ctx context.Context, table, column, id, target string) error {
	query, args, err := qb.Update(table).
		Set(column, target).
		Set("updated_at", r.now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set %s query: %w", column, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set %s on %s %s: %w", column, table, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %s not found", table, id)
	}
	return nil
}

func externalGameInsert(game external.Game, now time.Time) (externalGameInsertModel, error) {
	raw, err := jsonDocument(game.RawPayload)
	if err != nil {
		return externalGameInsertModel{}, err
	}
	model := externalGameInsertModel{
		ID:         game.ID,
		ExternalID: game.ExternalID,
		Source:     string(game.Source),
		Season:     game.Season,
		Week:       nullableInt(game.Week),
		HomeTeam:   game.HomeTeam,
		AwayTeam:   game.AwayTeam,
		HomeScore:  nullableInt(game.HomeScore),
		AwayScore:  nullableInt(game.AwayScore),
		Venue:      game.Venue,
		RawPayload: raw,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if game.Date != nil {
		model.GameDate = sql.NullTime{Time: game.Date.UTC(), Valid: true}
	}
	return model, nil
}

func toExternalGame(row externalGameTableModel) (external.Game, error) {
	raw, err := decodeDocument[external.Payload](row.RawPayload)
	if err != nil {
		return external.Game{}, fmt.Errorf("decode external game %s payload: %w", row.ID, err)
	}
	game := external.Game{
		ID:           row.ID,
		ExternalID:   row.ExternalID,
		Source:       external.Source(row.Source),
		Season:       row.Season,
		Week:         nullInt64ToIntPtr(row.Week),
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		HomeScore:    nullInt64ToIntPtr(row.HomeScore),
		AwayScore:    nullInt64ToIntPtr(row.AwayScore),
		Venue:        row.Venue,
		RawPayload:   raw,
		MappedGameID: row.MappedGameID.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.GameDate.Valid {
		date := row.GameDate.Time.UTC()
		game.Date = &date
	}
	return game, nil
}

func externalPlayInsert(play external.Play, now time.Time) (externalPlayInsertModel, error) {
	raw, err := jsonDocument(play.RawPayload)
	if err != nil {
		return externalPlayInsertModel{}, err
	}
	return externalPlayInsertModel{
		ID:             play.ID,
		ExternalGameID: play.ExternalGameID,
		ExternalID:     play.ExternalID,
		Source:         string(play.Source),
		Sequence:       play.Sequence,
		Quarter:        play.Quarter,
		Clock:          play.Time,
		Down:           nullableInt(play.Down),
		Distance:       nullableInt(play.Distance),
		YardLine:       nullableInt(play.YardLine),
		PlayType:       play.PlayType,
		Description:    play.Description,
		OffenseTeam:    play.OffenseTeam,
		DefenseTeam:    play.DefenseTeam,
		RawPayload:     raw,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func toExternalPlay(row externalPlayTableModel) (external.Play, error) {
	raw, err := decodeDocument[external.Payload](row.RawPayload)
	if err != nil {
		return external.Play{}, fmt.Errorf("decode external play %s payload: %w", row.ID, err)
	}
	return external.Play{
		ID:             row.ID,
		ExternalGameID: row.ExternalGameID,
		ExternalID:     row.ExternalID,
		Source:         external.Source(row.Source),
		Sequence:       row.Sequence,
		Quarter:        row.Quarter,
		Time:           row.Clock,
		Down:           nullInt64ToIntPtr(row.Down),
		Distance:       nullInt64ToIntPtr(row.Distance),
		YardLine:       nullInt64ToIntPtr(row.YardLine),
		PlayType:       row.PlayType,
		Description:    row.Description,
		OffenseTeam:    row.OffenseTeam,
		DefenseTeam:    row.DefenseTeam,
		RawPayload:     raw,
		MappedPlayID:   row.MappedPlayID.String,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
