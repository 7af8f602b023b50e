package scoring

import (
	"math"

	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
)

// SkaterPoints scores a skater line. Missing fields in the source line are
// zero-valued by construction, never "skip player".
func SkaterPoints(line statline.StatLine, w Weights) float64 {
	total := float64(line.Goals)*w.Goals +
		float64(line.Assists)*w.Assists +
		float64(line.PowerPlayPoints)*w.PowerPlayPoints +
		float64(line.ShortHandedPoints)*w.ShortHandedPoints +
		float64(line.ShotsOnGoal)*w.ShotsOnGoal +
		float64(line.Blocks)*w.Blocks +
		float64(line.Hits)*w.Hits +
		float64(line.PenaltyMinutes)*w.PenaltyMinutes +
		float64(line.PlusMinus)*w.PlusMinus
	return Round(total)
}

// GoaliePoints scores a goalie line. GoalsAgainst is weighted like any other
// category; leagues configure the weight negative to make it subtractive.
func GoaliePoints(line statline.StatLine, w Weights) float64 {
	total := float64(line.Wins)*w.Wins +
		float64(line.Saves)*w.Saves +
		float64(line.Shutouts)*w.Shutouts +
		float64(line.GoalsAgainst)*w.GoalsAgainst
	return Round(total)
}

// PlayerPoints dispatches on the authoritative roster position.
func PlayerPoints(position string, line statline.StatLine, w Weights) float64 {
	if roster.IsGoalie(position) {
		return GoaliePoints(line, w)
	}
	return SkaterPoints(line, w)
}

// Round normalizes a point value to cents so every evaluation path agrees
// bit-for-bit on stored and displayed scores.
func Round(points float64) float64 {
	return math.Round(points*100) / 100
}
