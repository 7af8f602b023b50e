package postgres

import "time"

type matchupTableModel struct {
	ID          string     `db:"id"`
	LeagueID    string     `db:"league_id"`
	Week        int        `db:"week"`
	HomeTeamID  string     `db:"home_team_id"`
	AwayTeamID  string     `db:"away_team_id"`
	StartDate   string     `db:"start_date"`
	EndDate     string     `db:"end_date"`
	Status      string     `db:"status"`
	HomeScore   *float64   `db:"home_score"`
	AwayScore   *float64   `db:"away_score"`
	FinalizedAt *time.Time `db:"finalized_at"`
	CreatedAt   time.Time  `db:"created_at"`
}
