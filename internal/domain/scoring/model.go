package scoring

import (
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

// Weights maps each stat category to its point value. Goalie GoalsAgainst is
// additive like every other category and is conventionally configured
// negative, so a 2-GA night under a -1 weight contributes -2 points.
type Weights struct {
	Goals             float64 `json:"goals" validate:"gte=-100,lte=100"`
	Assists           float64 `json:"assists" validate:"gte=-100,lte=100"`
	PowerPlayPoints   float64 `json:"power_play_points" validate:"gte=-100,lte=100"`
	ShortHandedPoints float64 `json:"short_handed_points" validate:"gte=-100,lte=100"`
	ShotsOnGoal       float64 `json:"shots_on_goal" validate:"gte=-100,lte=100"`
	Blocks            float64 `json:"blocks" validate:"gte=-100,lte=100"`
	Hits              float64 `json:"hits" validate:"gte=-100,lte=100"`
	PenaltyMinutes    float64 `json:"penalty_minutes" validate:"gte=-100,lte=100"`
	PlusMinus         float64 `json:"plus_minus" validate:"gte=-100,lte=100"`

	Wins         float64 `json:"wins" validate:"gte=-100,lte=100"`
	Saves        float64 `json:"saves" validate:"gte=-100,lte=100"`
	Shutouts     float64 `json:"shutouts" validate:"gte=-100,lte=100"`
	GoalsAgainst float64 `json:"goals_against" validate:"gte=-100,lte=100"`
}

// DefaultWeights is the league template applied before the commissioner
// customizes anything.
func DefaultWeights() Weights {
	return Weights{
		Goals:             3,
		Assists:           2,
		PowerPlayPoints:   0.5,
		ShortHandedPoints: 1,
		ShotsOnGoal:       0.4,
		Blocks:            0.4,
		Hits:              0.2,
		Wins:              5,
		Saves:             0.2,
		Shutouts:          3,
		GoalsAgainst:      -1,
	}
}

// Settings is a league's scoring configuration. Version increments on every
// change; cached scores carry the version they were computed under so stale
// rows are detectable.
type Settings struct {
	LeagueID  string
	Version   int
	Weights   Weights
	UpdatedAt time.Time
}

// PlayerContribution is one roster player's share of a daily score.
type PlayerContribution struct {
	PlayerID string  `json:"player_id"`
	Position string  `json:"position"`
	Goalie   bool    `json:"goalie"`
	Points   float64 `json:"points"`
	HasStats bool    `json:"has_stats"`
}

// CachedDailyScore is one previously computed (matchup, team, date) score.
// Immutable rows are served verbatim and never recomputed by the read path;
// they are discarded only when the league's settings version moves.
type CachedDailyScore struct {
	MatchupID       string
	TeamID          string
	LeagueID        string
	Date            gameday.Date
	Score           float64
	Breakdown       []PlayerContribution
	RosterSource    string
	SettingsVersion int
	Immutable       bool
	ComputedAt      time.Time
}
