package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/film-grading/internal/platform/querybuilder"
)

// BootstrapSeed loads the reference teams when the table only holds the
// unknown placeholder, which the schema migration creates.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	countQuery, countArgs, err := qb.Select("COUNT(1)").
		From("teams").
		Where(qb.Expr("id <> ?", team.UnknownTeamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build seed count query: %w", err)
	}
	var count int
	if err := db.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	statements, err := seedStatements(memory.SeedTeams())
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, st := range statements {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return fmt.Errorf("seed team %s: %w", st.teamID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

type seedStatement struct {
	teamID string
	query  string
	args   []any
}

func seedStatements(teams []team.Team) ([]seedStatement, error) {
	out := make([]seedStatement, 0, len(teams))
	for _, t := range teams {
		if t.IsUnknown() {
			continue
		}
		query, args, err := qb.InsertInto("teams").
			Columns("id", "name", "abbreviation", "aliases").
			Values(t.ID, t.Name, t.Abbreviation, pq.StringArray(t.Aliases)).
			OnConflict("id").
			DoNothing().
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build seed team %s query: %w", t.ID, err)
		}
		out = append(out, seedStatement{teamID: t.ID, query: query, args: args})
	}
	return out, nil
}
