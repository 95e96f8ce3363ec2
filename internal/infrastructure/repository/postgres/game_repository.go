package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/film-grading/internal/domain/game"
	qb "github.com/riskibarqy/film-grading/internal/platform/querybuilder"
)

type GameRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db, now: time.Now}
}

func (r *GameRepository) UpsertByExternalGame(ctx context.Context, g game.Game) (game.Game, error) {
	if err := g.Validate(); err != nil {
		return game.Game{}, err
	}
	model := gameInsert(g, r.now().UTC())

	query, args, err := qb.UpsertModel("games", model, []string{"external_game_id"}, []string{"created_at"}, "*")
	if err != nil {
		return game.Game{}, fmt.Errorf("build upsert game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("upsert game for external game %s: %w", g.ExternalGameID, err)
	}
	return toGame(row), nil
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}
	return toGame(row), true, nil
}

func gameInsert(g game.Game, now time.Time) gameTableModel {
	return gameTableModel{
		ID:             g.ID,
		TeamID:         g.TeamID,
		OpponentID:     g.OpponentID,
		GameDate:       game.DayKey(g.Date),
		Season:         g.Season,
		Week:           nullableInt(g.Week),
		Venue:          g.Venue,
		TeamScore:      nullableInt(g.TeamScore),
		OpponentScore:  nullableInt(g.OpponentScore),
		Source:         g.Source,
		ExternalGameID: g.ExternalGameID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func toGame(row gameTableModel) game.Game {
	return game.Game{
		ID:             row.ID,
		TeamID:         row.TeamID,
		OpponentID:     row.OpponentID,
		Date:           game.DayKey(row.GameDate),
		Season:         row.Season,
		Week:           nullInt64ToIntPtr(row.Week),
		Venue:          row.Venue,
		TeamScore:      nullInt64ToIntPtr(row.TeamScore),
		OpponentScore:  nullInt64ToIntPtr(row.OpponentScore),
		Source:         row.Source,
		ExternalGameID: row.ExternalGameID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
