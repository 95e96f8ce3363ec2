package team

import (
	"fmt"
	"strings"
)

// UnknownTeamID is the placeholder team used when a side of a game cannot be resolved.
const UnknownTeamID = "00000000-0000-0000-0000-000000000000"

// Team is an internal team a coach grades film for or against.
type Team struct {
	ID           string
	Name         string
	Abbreviation string
	Aliases      []string
}

func Unknown() Team {
	return Team{ID: UnknownTeamID, Name: "Unknown", Abbreviation: "UNK"}
}

func (t Team) IsUnknown() bool {
	return t.ID == UnknownTeamID
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}
