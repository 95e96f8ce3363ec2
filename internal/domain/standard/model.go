package standard

import "strings"

type PlayType string

const (
	PlayTypeRush       PlayType = "RUSH"
	PlayTypePass       PlayType = "PASS"
	PlayTypePunt       PlayType = "PUNT"
	PlayTypeFieldGoal  PlayType = "FIELD_GOAL"
	PlayTypeKickoff    PlayType = "KICKOFF"
	PlayTypeExtraPoint PlayType = "EXTRA_POINT"
	PlayTypeSafety     PlayType = "SAFETY"
	PlayTypePenalty    PlayType = "PENALTY"
	PlayTypeTimeout    PlayType = "TIMEOUT"
	PlayTypeChallenge  PlayType = "CHALLENGE"
)

var playTypes = []PlayType{
	PlayTypeRush,
	PlayTypePass,
	PlayTypePunt,
	PlayTypeFieldGoal,
	PlayTypeKickoff,
	PlayTypeExtraPoint,
	PlayTypeSafety,
	PlayTypePenalty,
	PlayTypeTimeout,
	PlayTypeChallenge,
}

func PlayTypes() []PlayType {
	return append([]PlayType(nil), playTypes...)
}

func (t PlayType) Valid() bool {
	for _, known := range playTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParsePlayType upper-cases v and folds spaces and hyphens to underscores
// before matching the enumeration.
func ParsePlayType(v string) (PlayType, bool) {
	key := strings.ToUpper(strings.TrimSpace(v))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	pt := PlayType(key)
	return pt, pt.Valid()
}

// Result is the outcome of one play. Nil means unknown.
type Result struct {
	Yards        *int  `json:"yards"`
	Success      *bool `json:"success"`
	Points       *int  `json:"points"`
	Turnover     *bool `json:"turnover"`
	Sack         *bool `json:"sack"`
	Interception *bool `json:"interception"`
	Fumble       *bool `json:"fumble"`
}

// Flags are situational booleans derived from down, distance and yard line.
type Flags struct {
	IsRedZone    bool `json:"isRedZone"`
	IsGoalToGo   bool `json:"isGoalToGo"`
	IsThirdDown  bool `json:"isThirdDown"`
	IsFourthDown bool `json:"isFourthDown"`
}

// Play is the provider-neutral play shape. YardLine is the distance from the
// offense to the opponent's goal line.
type Play struct {
	ID          string   `json:"id" validate:"required"`
	GameID      string   `json:"gameId" validate:"required"`
	Source      string   `json:"source"`
	Quarter     int      `json:"quarter"`
	Time        string   `json:"time"`
	Down        *int     `json:"down"`
	Distance    *int     `json:"distance" validate:"omitempty,min=0"`
	YardLine    *int     `json:"yardLine"`
	PlayType    PlayType `json:"playType" validate:"required,playtype"`
	Description string   `json:"description"`
	Offense     string   `json:"offense"`
	Defense     string   `json:"defense"`
	Result      Result   `json:"result"`
	Formation   *string  `json:"formation"`
	Personnel   *string  `json:"personnel"`
	Blitz       *bool    `json:"blitz"`
	Pressure    *bool    `json:"pressure"`
	Coverage    *string  `json:"coverage"`
	Flags
}

// ComputeFlags is the only place situational flags are derived.
func ComputeFlags(down, distance, yardLine *int) Flags {
	f := Flags{}
	if yardLine != nil && *yardLine <= 20 {
		f.IsRedZone = true
	}
	if down != nil && distance != nil && yardLine != nil && *yardLine <= *distance {
		f.IsGoalToGo = true
	}
	if down != nil {
		f.IsThirdDown = *down == 3
		f.IsFourthDown = *down == 4
	}
	return f
}
