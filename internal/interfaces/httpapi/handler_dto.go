package httpapi

import (
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/play"
	"github.com/riskibarqy/film-grading/internal/domain/standard"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

type createExternalGameRequest struct {
	Source string         `json:"source" validate:"required"`
	Game   map[string]any `json:"game" validate:"required"`
}

type importPlaysRequest struct {
	Source string           `json:"source"`
	Plays  []map[string]any `json:"plays" validate:"required,min=1"`
}

type importGameRequest struct {
	TeamID     string `json:"team_id"`
	OpponentID string `json:"opponent_id"`
}

type standardizeRequest struct {
	Source string           `json:"source"`
	Plays  []map[string]any `json:"plays" validate:"required,min=1"`
}

type batchSyncRequest struct {
	GameRefs []string `json:"game_refs" validate:"required,min=1,max=50"`
	Workers  int      `json:"workers" validate:"gte=0,lte=16"`
}

type healthDTO struct {
	Status  string   `json:"status"`
	Sources []string `json:"sources,omitempty"`
}

type teamDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	Aliases      []string `json:"aliases"`
}

type externalGameDTO struct {
	ID           string           `json:"id"`
	ExternalID   string           `json:"externalId"`
	Source       string           `json:"source"`
	Season       int              `json:"season"`
	Week         *int             `json:"week"`
	HomeTeam     string           `json:"homeTeam"`
	AwayTeam     string           `json:"awayTeam"`
	HomeScore    *int             `json:"homeScore"`
	AwayScore    *int             `json:"awayScore"`
	Date         string           `json:"date,omitempty"`
	Venue        string           `json:"venue"`
	MappedGameID string           `json:"mappedGameId,omitempty"`
	RawPayload   external.Payload `json:"rawPayload,omitempty"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
}

type playDTO struct {
	ID             string            `json:"id"`
	GameID         string            `json:"gameId"`
	ExternalPlayID string            `json:"externalPlayId"`
	Sequence       int               `json:"sequence"`
	Quarter        int               `json:"quarter"`
	Time           string            `json:"time"`
	Down           *int              `json:"down"`
	Distance       *int              `json:"distance"`
	YardLine       *int              `json:"yardLine"`
	PlayType       standard.PlayType `json:"playType"`
	Description    string            `json:"description"`
	Offense        string            `json:"offense"`
	Defense        string            `json:"defense"`
	Result         standard.Result   `json:"result"`
	Formation      *string           `json:"formation"`
	Personnel      *string           `json:"personnel"`
	Blitz          *bool             `json:"blitz"`
	Pressure       *bool             `json:"pressure"`
	Coverage       *string           `json:"coverage"`
	standard.Flags
}

type syncDTO struct {
	Game  externalGameDTO            `json:"game"`
	Plays usecase.ImportPlaysSummary `json:"plays"`
}

func teamToDTO(v team.Team) teamDTO {
	aliases := append([]string{}, v.Aliases...)
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		Abbreviation: v.Abbreviation,
		Aliases:      aliases,
	}
}

// externalGameToDTO drops the raw payload unless withRaw is set; it can be large.
func externalGameToDTO(v external.Game, withRaw bool) externalGameDTO {
	out := externalGameDTO{
		ID:           v.ID,
		ExternalID:   v.ExternalID,
		Source:       string(v.Source),
		Season:       v.Season,
		Week:         v.Week,
		HomeTeam:     v.HomeTeam,
		AwayTeam:     v.AwayTeam,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Date:         formatOptionalTime(v.Date),
		Venue:        v.Venue,
		MappedGameID: v.MappedGameID,
		CreatedAt:    formatTime(v.CreatedAt),
		UpdatedAt:    formatTime(v.UpdatedAt),
	}
	if withRaw {
		out.RawPayload = v.RawPayload
	}
	return out
}

func playToDTO(v play.Play) playDTO {
	return playDTO{
		ID:             v.ID,
		GameID:         v.GameID,
		ExternalPlayID: v.ExternalPlayID,
		Sequence:       v.Sequence,
		Quarter:        v.Quarter,
		Time:           v.Time,
		Down:           v.Down,
		Distance:       v.Distance,
		YardLine:       v.YardLine,
		PlayType:       v.PlayType,
		Description:    v.Description,
		Offense:        v.Offense,
		Defense:        v.Defense,
		Result:         v.Result,
		Formation:      v.Formation,
		Personnel:      v.Personnel,
		Blitz:          v.Blitz,
		Pressure:       v.Pressure,
		Coverage:       v.Coverage,
		Flags:          v.Flags,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
