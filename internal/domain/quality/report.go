package quality

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// TierFor maps an overall score to its tier. Lower bounds are inclusive.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierGood
	case score >= 60:
		return TierFair
	default:
		return TierPoor
	}
}

// Report is the data quality verdict for one external game and its plays.
type Report struct {
	ExternalGameID string   `json:"externalGameId"`
	Source         string   `json:"source"`
	GameValid      bool     `json:"gameValid"`
	TotalPlays     int      `json:"totalPlays"`
	ValidPlays     int      `json:"validPlays"`
	InvalidPlays   int      `json:"invalidPlays"`
	GameScore      int      `json:"gameScore"`
	PlaysScore     float64  `json:"playsScore"`
	OverallScore   int      `json:"overallScore"`
	Tier           Tier     `json:"tier"`
	Issues         []string `json:"issues"`
	Warnings       []string `json:"warnings"`
}
