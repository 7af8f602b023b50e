package postgres

import "time"

type scoringSettingsTableModel struct {
	LeagueID  string    `db:"league_id"`
	Version   int       `db:"version"`
	Weights   string    `db:"weights"`
	UpdatedAt time.Time `db:"updated_at"`
}

type cachedScoreTableModel struct {
	MatchupID       string    `db:"matchup_id"`
	TeamID          string    `db:"team_id"`
	LeagueID        string    `db:"league_id"`
	Date            string    `db:"date"`
	Score           float64   `db:"score"`
	Breakdown       string    `db:"breakdown"`
	RosterSource    string    `db:"roster_source"`
	SettingsVersion int       `db:"settings_version"`
	ComputedAt      time.Time `db:"computed_at"`
}
