package statline

import "github.com/pondside/fantasy-hockey/internal/domain/gameday"

// StatLine is one player's raw counting statistics for one calendar day,
// produced by the external ingestion pipeline. A player without a line for a
// date simply scored nothing; absence is data, not an error.
type StatLine struct {
	PlayerID string
	Date     gameday.Date

	Goals             int
	Assists           int
	PowerPlayPoints   int
	ShortHandedPoints int
	ShotsOnGoal       int
	Blocks            int
	Hits              int
	PenaltyMinutes    int
	PlusMinus         int

	Wins         int
	Saves        int
	Shutouts     int
	GoalsAgainst int
}

// Zero returns the all-zero line for a player/date, used when the provider
// has no record.
func Zero(playerID string, date gameday.Date) StatLine {
	return StatLine{PlayerID: playerID, Date: date}
}
