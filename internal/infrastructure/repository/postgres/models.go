package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Abbreviation string         `db:"abbreviation"`
	Aliases      pq.StringArray `db:"aliases"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type externalGameTableModel struct {
	ID           string         `db:"id"`
	ExternalID   string         `db:"external_id"`
	Source       string         `db:"source"`
	Season       int            `db:"season"`
	Week         sql.NullInt64  `db:"week"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	GameDate     sql.NullTime   `db:"game_date"`
	Venue        string         `db:"venue"`
	RawPayload   []byte         `db:"raw_payload"`
	MappedGameID sql.NullString `db:"mapped_game_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// externalGameInsertModel leaves the mapping pointer out so upserts never touch it.
type externalGameInsertModel struct {
	ID         string        `db:"id"`
	ExternalID string        `db:"external_id"`
	Source     string        `db:"source"`
	Season     int           `db:"season"`
	Week       sql.NullInt64 `db:"week"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	GameDate   sql.NullTime  `db:"game_date"`
	Venue      string        `db:"venue"`
	RawPayload string        `db:"raw_payload"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type externalPlayTableModel struct {
	ID             string         `db:"id"`
	ExternalGameID string         `db:"external_game_id"`
	ExternalID     string         `db:"external_id"`
	Source         string         `db:"source"`
	Sequence       int            `db:"sequence"`
	Quarter        int            `db:"quarter"`
	Clock          string         `db:"clock"`
	Down           sql.NullInt64  `db:"down"`
	Distance       sql.NullInt64  `db:"distance"`
	YardLine       sql.NullInt64  `db:"yard_line"`
	PlayType       string         `db:"play_type"`
	Description    string         `db:"description"`
	OffenseTeam    string         `db:"offense_team"`
	DefenseTeam    string         `db:"defense_team"`
	RawPayload     []byte         `db:"raw_payload"`
	MappedPlayID   sql.NullString `db:"mapped_play_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type externalPlayInsertModel struct {
	ID             string        `db:"id"`
	ExternalGameID string        `db:"external_game_id"`
	ExternalID     string        `db:"external_id"`
	Source         string        `db:"source"`
	Sequence       int           `db:"sequence"`
	Quarter        int           `db:"quarter"`
	Clock          string        `db:"clock"`
	Down           sql.NullInt64 `db:"down"`
	Distance       sql.NullInt64 `db:"distance"`
	YardLine       sql.NullInt64 `db:"yard_line"`
	PlayType       string        `db:"play_type"`
	Description    string        `db:"description"`
	OffenseTeam    string        `db:"offense_team"`
	DefenseTeam    string        `db:"defense_team"`
	RawPayload     string        `db:"raw_payload"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type gameTableModel struct {
	ID             string        `db:"id"`
	TeamID         string        `db:"team_id"`
	OpponentID     string        `db:"opponent_id"`
	GameDate       time.Time     `db:"game_date"`
	Season         int           `db:"season"`
	Week           sql.NullInt64 `db:"week"`
	Venue          string        `db:"venue"`
	TeamScore      sql.NullInt64 `db:"team_score"`
	OpponentScore  sql.NullInt64 `db:"opponent_score"`
	Source         string        `db:"source"`
	ExternalGameID string        `db:"external_game_id"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type playTableModel struct {
	ID             string         `db:"id"`
	GameID         string         `db:"game_id"`
	ExternalPlayID string         `db:"external_play_id"`
	Sequence       int            `db:"sequence"`
	Quarter        int            `db:"quarter"`
	Clock          string         `db:"clock"`
	Down           sql.NullInt64  `db:"down"`
	Distance       sql.NullInt64  `db:"distance"`
	YardLine       sql.NullInt64  `db:"yard_line"`
	PlayType       string         `db:"play_type"`
	Description    string         `db:"description"`
	Offense        string         `db:"offense"`
	Defense        string         `db:"defense"`
	Result         []byte         `db:"result"`
	Formation      sql.NullString `db:"formation"`
	Personnel      sql.NullString `db:"personnel"`
	Blitz          sql.NullBool   `db:"blitz"`
	Pressure       sql.NullBool   `db:"pressure"`
	Coverage       sql.NullString `db:"coverage"`
	IsRedZone      bool           `db:"is_red_zone"`
	IsGoalToGo     bool           `db:"is_goal_to_go"`
	IsThirdDown    bool           `db:"is_third_down"`
	IsFourthDown   bool           `db:"is_fourth_down"`
	CreatedAt      time.Time      `db:"created_at"`
}

type playInsertModel struct {
	ID             string         `db:"id"`
	GameID         string         `db:"game_id"`
	ExternalPlayID string         `db:"external_play_id"`
	Sequence       int            `db:"sequence"`
	Quarter        int            `db:"quarter"`
	Clock          string         `db:"clock"`
	Down           sql.NullInt64  `db:"down"`
	Distance       sql.NullInt64  `db:"distance"`
	YardLine       sql.NullInt64  `db:"yard_line"`
	PlayType       string         `db:"play_type"`
	Description    string         `db:"description"`
	Offense        string         `db:"offense"`
	Defense        string         `db:"defense"`
	Result         string         `db:"result"`
	Formation      sql.NullString `db:"formation"`
	Personnel      sql.NullString `db:"personnel"`
	Blitz          sql.NullBool   `db:"blitz"`
	Pressure       sql.NullBool   `db:"pressure"`
	Coverage       sql.NullString `db:"coverage"`
	IsRedZone      bool           `db:"is_red_zone"`
	IsGoalToGo     bool           `db:"is_goal_to_go"`
	IsThirdDown    bool           `db:"is_third_down"`
	IsFourthDown   bool           `db:"is_fourth_down"`
	CreatedAt      time.Time      `db:"created_at"`
}
