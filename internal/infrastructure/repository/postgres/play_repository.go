package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/film-grading/internal/domain/play"
	"github.com/riskibarqy/film-grading/internal/domain/standard"
	qb "github.com/riskibarqy/film-grading/internal/platform/querybuilder"
)

type PlayRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPlayRepository(db *sqlx.DB) *PlayRepository {
	return &PlayRepository{db: db, now: time.Now}
}

func (r *PlayRepository) Create(ctx context.Context, p play.Play) (play.Play, error) {
	if err := p.Validate(); err != nil {
		return play.Play{}, err
	}
	model, err := playInsert(p, r.now().UTC())
	if err != nil {
		return play.Play{}, fmt.Errorf("encode play result: %w", err)
	}

	query, args, err := qb.InsertModel("plays", model, "*")
	if err != nil {
		return play.Play{}, fmt.Errorf("build insert play query: %w", err)
	}

	var row playTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return play.Play{}, fmt.Errorf("play for game %s external play %s already exists: %w", p.GameID, p.ExternalPlayID, err)
		}
		return play.Play{}, fmt.Errorf("insert play: %w", err)
	}
	return toPlay(row)
}

func (r *PlayRepository) GetByID(ctx context.Context, id string) (play.Play, bool, error) {
	return r.getPlay(ctx, "get play by id", qb.Eq("id", id))
}

func (r *PlayRepository) GetByExternalID(ctx context.Context, gameID, externalPlayID string) (play.Play, bool, error) {
	if externalPlayID == "" {
		return play.Play{}, false, nil
	}
	return r.getPlay(ctx, "get play by external id", qb.Eq("game_id", gameID), qb.Eq("external_play_id", externalPlayID))
}

func (r *PlayRepository) getPlay(ctx context.Context, op string, conditions ...qb.Condition) (play.Play, bool, error) {
	query, args, err := qb.Select("*").From("plays").Where(conditions...).Limit(1).ToSQL()
	if err != nil {
		return play.Play{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row playTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return play.Play{}, false, nil
		}
		return play.Play{}, false, fmt.Errorf("%s: %w", op, err)
	}
	item, err := toPlay(row)
	if err != nil {
		return play.Play{}, false, err
	}
	return item, true, nil
}

func (r *PlayRepository) ListByGame(ctx context.Context, gameID string) ([]play.Play, error) {
	query, args, err := qb.Select("*").
		From("plays").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("sequence", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list plays query: %w", err)
	}

	var rows []playTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list plays by game: %w", err)
	}

	out := make([]play.Play, 0, len(rows))
	for _, row := range rows {
		item, err := toPlay(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func playInsert(p play.Play, now time.Time) (playInsertModel, error) {
	result, err := jsonDocument(p.Result)
	if err != nil {
		return playInsertModel{}, err
	}
	return playInsertModel{
		ID:             p.ID,
		GameID:         p.GameID,
		ExternalPlayID: p.ExternalPlayID,
		Sequence:       p.Sequence,
		Quarter:        p.Quarter,
		Clock:          p.Time,
		Down:           nullableInt(p.Down),
		Distance:       nullableInt(p.Distance),
		YardLine:       nullableInt(p.YardLine),
		PlayType:       string(p.PlayType),
		Description:    p.Description,
		Offense:        p.Offense,
		Defense:        p.Defense,
		Result:         result,
		Formation:      nullableString(p.Formation),
		Personnel:      nullableString(p.Personnel),
		Blitz:          nullableBool(p.Blitz),
		Pressure:       nullableBool(p.Pressure),
		Coverage:       nullableString(p.Coverage),
		IsRedZone:      p.IsRedZone,
		IsGoalToGo:     p.IsGoalToGo,
		IsThirdDown:    p.IsThirdDown,
		IsFourthDown:   p.IsFourthDown,
		CreatedAt:      now,
	}, nil
}

func toPlay(row playTableModel) (play.Play, error) {
	result, err := decodeDocument[standard.Result](row.Result)
	if err != nil {
		return play.Play{}, fmt.Errorf("decode play %s result: %w", row.ID, err)
	}
	return play.Play{
		ID:             row.ID,
		GameID:         row.GameID,
		ExternalPlayID: row.ExternalPlayID,
		Sequence:       row.Sequence,
		Quarter:        row.Quarter,
		Time:           row.Clock,
		Down:           nullInt64ToIntPtr(row.Down),
		Distance:       nullInt64ToIntPtr(row.Distance),
		YardLine:       nullInt64ToIntPtr(row.YardLine),
		PlayType:       standard.PlayType(row.PlayType),
		Description:    row.Description,
		Offense:        row.Offense,
		Defense:        row.Defense,
		Result:         result,
		Formation:      nullStringToPtr(row.Formation),
		Personnel:      nullStringToPtr(row.Personnel),
		Blitz:          nullBoolToPtr(row.Blitz),
		Pressure:       nullBoolToPtr(row.Pressure),
		Coverage:       nullStringToPtr(row.Coverage),
		Flags: standard.Flags{
			IsRedZone:    row.IsRedZone,
			IsGoalToGo:   row.IsGoalToGo,
			IsThirdDown:  row.IsThirdDown,
			IsFourthDown: row.IsFourthDown,
		},
		CreatedAt: row.CreatedAt,
	}, nil
}
