package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "quarter").
		From("external_plays").
		Where(Eq("external_game_id", "g1"), IsNull("mapped_play_id")).
		OrderBy("quarter", "id").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT id, quarter FROM external_plays WHERE external_game_id = $1 AND mapped_play_id IS NULL ORDER BY quarter, id LIMIT 50"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndExpr(t *testing.T) {
	query, args, err := Select("id").
		From("teams").
		Where(In("id", []any{"a", "b"}), Expr("lower(name) = lower(?)", "Ohio St")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT id FROM teams WHERE id IN ($1, $2) AND lower(name) = lower($3)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[2] != "Ohio St" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_OnConflictDoUpdate(t *testing.T) {
	query, args, err := InsertInto("external_games").
		Columns("id", "source", "external_id", "home_team").
		Values("g1", "espn", "401", "Alabama").
		OnConflict("source", "external_id").
		DoUpdate("home_team").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO external_games (id, source, external_id, home_team) VALUES ($1, $2, $3, $4) ON CONFLICT (source, external_id) DO UPDATE SET home_team = EXCLUDED.home_team RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsConflictActionWithoutColumns(t *testing.T) {
	_, _, err := InsertInto("plays").Columns("id").Values("p1").DoNothing().ToSQL()
	if err == nil {
		t.Fatalf("expected error for conflict action without columns")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("external_plays").
		Set("mapped_play_id", "p1").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "x1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE external_plays SET mapped_play_id = $1, updated_at = NOW() WHERE id = $2"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "p1" || args[1] != "x1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("games").Set("venue", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
}

type upsertRow struct {
	ID         string `db:"id"`
	TeamID     string `db:"team_id"`
	OpponentID string `db:"opponent_id"`
	Venue      string `db:"venue"`
	RawPayload string `db:"raw_payload"`
	CreatedAt  string `db:"created_at"`
	ignored    string
	Skip       string `db:"-"`
}

func TestUpsertModel(t *testing.T) {
	row := upsertRow{ID: "g1", TeamID: "t1", OpponentID: "t2", Venue: "Field", RawPayload: "{}", CreatedAt: "now", ignored: "x", Skip: "y"}
	query, args, err := UpsertModel("games", row, []string{"team_id", "opponent_id"}, []string{"raw_payload", "created_at"}, "id")
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}

	want := "INSERT INTO games (id, team_id, opponent_id, venue, raw_payload, created_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (team_id, opponent_id) DO UPDATE SET venue = EXCLUDED.venue RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
