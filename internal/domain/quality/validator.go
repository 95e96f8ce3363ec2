package quality

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/standard"
)

const (
	minSeason         = 2000
	maxSeason         = 2030
	minDescriptionLen = 5
)

// Validator scores external games. It is safe for concurrent use.
type Validator struct {
	shape *validator.Validate
	// standardize is swapped in tests to exercise the per-play recovery path.
	standardize func(map[string]any, string) standard.Play
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("playtype", func(fl validator.FieldLevel) bool {
		return standard.PlayType(fl.Field().String()).Valid()
	})
	return &Validator{shape: v, standardize: standard.Standardize}
}

// Validate never fails on bad data; findings are reported as issues and warnings.
func (v *Validator) Validate(game external.Game, plays []external.Play) Report {
	report := Report{
		ExternalGameID: game.ID,
		Source:         string(game.Source),
		GameValid:      true,
		TotalPlays:     len(plays),
		Issues:         []string{},
		Warnings:       []string{},
	}

	if strings.TrimSpace(game.HomeTeam) == "" {
		report.GameValid = false
		report.Issues = append(report.Issues, "Missing home team")
	}
	if strings.TrimSpace(game.AwayTeam) == "" {
		report.GameValid = false
		report.Issues = append(report.Issues, "Missing away team")
	}
	if game.Date == nil || game.Date.IsZero() {
		report.GameValid = false
		report.Issues = append(report.Issues, "Missing game date")
	}
	if game.Season < minSeason || game.Season > maxSeason {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Season %d outside expected range %d-%d", game.Season, minSeason, maxSeason))
	}

	for _, play := range plays {
		p, err := v.checkPlay(play)
		if err != nil {
			report.InvalidPlays++
			report.Issues = append(report.Issues, fmt.Sprintf("Play %s: %s", play.ExternalID, err.Error()))
		}
		v.checkRanges(&report, play.ExternalID, p)
	}
	report.ValidPlays = report.TotalPlays - report.InvalidPlays

	report.GameScore = 50
	if report.GameValid {
		report.GameScore = 100
	}
	if report.TotalPlays > 0 {
		report.PlaysScore = 100 * float64(report.ValidPlays) / float64(report.TotalPlays)
	}
	report.OverallScore = int(math.Round((float64(report.GameScore) + report.PlaysScore) / 2))
	report.Tier = TierFor(report.OverallScore)
	return report
}

func (v *Validator) checkPlay(play external.Play) (p standard.Play, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = neutralView(play)
			err = fmt.Errorf("%v", r)
		}
	}()

	p = v.standardize(play.Record(), string(play.Source))
	if shapeErr := v.shape.Struct(p); shapeErr != nil {
		return p, describeShapeError(shapeErr)
	}
	return p, nil
}

// neutralView exposes the fields range checks need when standardization itself blew up.
func neutralView(play external.Play) standard.Play {
	quarter := play.Quarter
	if quarter == 0 {
		quarter = 1
	}
	return standard.Play{
		Quarter:     quarter,
		Down:        play.Down,
		YardLine:    play.YardLine,
		Description: play.Description,
	}
}

func (v *Validator) checkRanges(report *Report, externalID string, p standard.Play) {
	if len(strings.TrimSpace(p.Description)) < minDescriptionLen {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Play %s: description missing or too short", externalID))
	}
	if p.Quarter < 1 || p.Quarter > 4 {
		report.Issues = append(report.Issues, fmt.Sprintf("Play %s: quarter %d outside 1-4", externalID, p.Quarter))
	}
	if p.Down != nil && (*p.Down < 1 || *p.Down > 4) {
		report.Issues = append(report.Issues, fmt.Sprintf("Play %s: down %d outside 1-4", externalID, *p.Down))
	}
	if p.YardLine != nil && (*p.YardLine < 0 || *p.YardLine > 100) {
		report.Issues = append(report.Issues, fmt.Sprintf("Play %s: yard line %d outside 0-100", externalID, *p.YardLine))
	}
}

func describeShapeError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}
