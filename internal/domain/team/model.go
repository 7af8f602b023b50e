package team

import "time"

// Team is one fantasy roster owner inside a league.
type Team struct {
	ID        string
	LeagueID  string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
