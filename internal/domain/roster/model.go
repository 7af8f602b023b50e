package roster

import (
	"strings"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

const (
	SlotActive  = "active"
	SlotBench   = "bench"
	SlotReserve = "reserve"
)

const (
	PositionGoalie     = "G"
	PositionCenter     = "C"
	PositionLeftWing   = "LW"
	PositionRightWing  = "RW"
	PositionDefenseman = "D"
)

// Assignment places one player in a lineup slot. Position is the single
// authoritative goalie-vs-skater signal; scoring never infers it from which
// stat fields happen to be populated.
type Assignment struct {
	PlayerID string `json:"player_id"`
	Position string `json:"position"`
	Slot     string `json:"slot"`
}

// Lineup is the team's latest assignment, mutated freely by the owner. It
// has no date dimension.
type Lineup struct {
	TeamID      string
	Assignments []Assignment
	UpdatedAt   time.Time
}

// Snapshot is the immutable record of a team's assignment on one calendar
// day. Once that day has elapsed the row must never change; frozen scoring
// depends on it.
type Snapshot struct {
	TeamID      string
	Date        gameday.Date
	Assignments []Assignment
	CapturedAt  time.Time
}

// Active returns the assignments occupying active slots, the only ones that
// contribute points.
func Active(assignments []Assignment) []Assignment {
	out := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if NormalizeSlot(a.Slot) == SlotActive {
			out = append(out, a)
		}
	}
	return out
}

func NormalizeSlot(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsValidSlot(value string) bool {
	switch NormalizeSlot(value) {
	case SlotActive, SlotBench, SlotReserve:
		return true
	default:
		return false
	}
}

func NormalizePosition(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func IsValidPosition(value string) bool {
	switch NormalizePosition(value) {
	case PositionGoalie, PositionCenter, PositionLeftWing, PositionRightWing, PositionDefenseman:
		return true
	default:
		return false
	}
}

func IsGoalie(position string) bool {
	return NormalizePosition(position) == PositionGoalie
}
