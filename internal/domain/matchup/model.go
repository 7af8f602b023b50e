package matchup

import (
	"strings"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Matchup pits two teams against each other over a date range, usually one
// week. Score fields are written once by the reconciler after every day in
// the range is frozen; status transitions are owned by the league scheduler.
type Matchup struct {
	ID          string
	LeagueID    string
	Week        int
	HomeTeamID  string
	AwayTeamID  string
	StartDate   gameday.Date
	EndDate     gameday.Date
	Status      string
	HomeScore   *float64
	AwayScore   *float64
	FinalizedAt *time.Time
}

// Dates lists every calendar day in the matchup range, inclusive.
func (m Matchup) Dates() []gameday.Date {
	return gameday.Range(m.StartDate, m.EndDate)
}

func (m Matchup) HasTeam(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

func (m Matchup) HasPersistedScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsCompletedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCompleted, "FINAL", "FINALIZED":
		return true
	default:
		return false
	}
}

func IsInProgressStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInProgress, "LIVE", "ACTIVE":
		return true
	default:
		return false
	}
}
