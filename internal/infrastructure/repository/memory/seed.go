package memory

import "github.com/riskibarqy/film-grading/internal/domain/team"

// Seeded team ids used by DB-less development and tests.
const (
	TeamIDAlabama   = "0195f3a8-1c00-7000-8000-000000000001"
	TeamIDGeorgia   = "0195f3a8-1c00-7000-8000-000000000002"
	TeamIDOhioState = "0195f3a8-1c00-7000-8000-000000000003"
	TeamIDMichigan  = "0195f3a8-1c00-7000-8000-000000000004"
	TeamIDTexasAM   = "0195f3a8-1c00-7000-8000-000000000005"
	TeamIDMiamiFL   = "0195f3a8-1c00-7000-8000-000000000006"
	TeamIDSanJoseSt = "0195f3a8-1c00-7000-8000-000000000007"
	TeamIDNotreDame = "0195f3a8-1c00-7000-8000-000000000008"
	TeamIDLSU       = "0195f3a8-1c00-7000-8000-000000000009"
	TeamIDPennState = "0195f3a8-1c00-7000-8000-00000000000a"
	TeamIDOregon    = "0195f3a8-1c00-7000-8000-00000000000b"
	TeamIDUSC       = "0195f3a8-1c00-7000-8000-00000000000c"
)

// SeedTeams returns a small FBS set plus the unknown placeholder.
func SeedTeams() []team.Team {
	return []team.Team{
		team.Unknown(),
		{ID: TeamIDAlabama, Name: "Alabama Crimson Tide", Abbreviation: "ALA", Aliases: []string{"Alabama", "Bama"}},
		{ID: TeamIDGeorgia, Name: "Georgia Bulldogs", Abbreviation: "UGA", Aliases: []string{"Georgia"}},
		{ID: TeamIDOhioState, Name: "Ohio State Buckeyes", Abbreviation: "OSU", Aliases: []string{"Ohio State", "Ohio St."}},
		{ID: TeamIDMichigan, Name: "Michigan Wolverines", Abbreviation: "MICH", Aliases: []string{"Michigan"}},
		{ID: TeamIDTexasAM, Name: "Texas A&M Aggies", Abbreviation: "TAMU", Aliases: []string{"Texas A&M"}},
		{ID: TeamIDMiamiFL, Name: "Miami Hurricanes", Abbreviation: "MIA", Aliases: []string{"Miami (FL)", "Miami Florida"}},
		{ID: TeamIDSanJoseSt, Name: "San José State Spartans", Abbreviation: "SJSU", Aliases: []string{"San Jose State"}},
		{ID: TeamIDNotreDame, Name: "Notre Dame Fighting Irish", Abbreviation: "ND", Aliases: []string{"Notre Dame"}},
		{ID: TeamIDLSU, Name: "LSU Tigers", Abbreviation: "LSU", Aliases: []string{"Louisiana State"}},
		{ID: TeamIDPennState, Name: "Penn State Nittany Lions", Abbreviation: "PSU", Aliases: []string{"Penn State"}},
		{ID: TeamIDOregon, Name: "Oregon Ducks", Abbreviation: "ORE", Aliases: []string{"Oregon"}},
		{ID: TeamIDUSC, Name: "USC Trojans", Abbreviation: "USC", Aliases: []string{"Southern California"}},
	}
}
