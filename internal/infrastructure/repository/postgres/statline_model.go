package postgres

import "time"

type statLineTableModel struct {
	PlayerID string `db:"player_id"`
	Date     string `db:"date"`

	Goals             int `db:"goals"`
	Assists           int `db:"assists"`
	PowerPlayPoints   int `db:"power_play_points"`
	ShortHandedPoints int `db:"short_handed_points"`
	ShotsOnGoal       int `db:"shots_on_goal"`
	Blocks            int `db:"blocks"`
	Hits              int `db:"hits"`
	PenaltyMinutes    int `db:"penalty_minutes"`
	PlusMinus         int `db:"plus_minus"`

	Wins         int `db:"wins"`
	Saves        int `db:"saves"`
	Shutouts     int `db:"shutouts"`
	GoalsAgainst int `db:"goals_against"`

	IngestedAt time.Time `db:"ingested_at"`
}

type gameDayTableModel struct {
	Date          string    `db:"date"`
	GamesComplete bool      `db:"games_complete"`
	UpdatedAt     time.Time `db:"updated_at"`
}
