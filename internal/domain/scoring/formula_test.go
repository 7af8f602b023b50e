package scoring

import (
	"testing"

	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
)

func TestSkaterPoints(t *testing.T) {
	t.Parallel()

	weights := Weights{Goals: 3, Assists: 2, ShotsOnGoal: 0.4, Blocks: 0.4}
	line := statline.StatLine{
		PlayerID:    "skater-1",
		Goals:       2,
		Assists:     1,
		ShotsOnGoal: 4,
		Blocks:      1,
	}

	// 2*3 + 1*2 + 4*0.4 + 1*0.4 = 10.0
	if got := SkaterPoints(line, weights); got != 10.0 {
		t.Fatalf("unexpected skater points: got=%v want=10.0", got)
	}
}

func TestGoaliePoints_NegativeGoalsAgainstWeight(t *testing.T) {
	t.Parallel()

	weights := Weights{Wins: 5, Saves: 0.2, Shutouts: 3, GoalsAgainst: -1}
	line := statline.StatLine{
		PlayerID:     "goalie-1",
		Wins:         1,
		Saves:        30,
		Shutouts:     0,
		GoalsAgainst: 2,
	}

	// 5 + 6 + 0 - 2 = 9.0
	if got := GoaliePoints(line, weights); got != 9.0 {
		t.Fatalf("unexpected goalie points: got=%v want=9.0", got)
	}
}

func TestPlayerPoints_DispatchesOnPosition(t *testing.T) {
	t.Parallel()

	weights := DefaultWeights()
	// A line with both skater and goalie fields populated must be scored
	// strictly by the roster position, never by which fields look "goalie-ish".
	line := statline.StatLine{
		PlayerID: "p1",
		Goals:    1,
		Wins:     1,
		Saves:    20,
	}

	asSkater := PlayerPoints(roster.PositionCenter, line, weights)
	asGoalie := PlayerPoints(roster.PositionGoalie, line, weights)
	if asSkater != weights.Goals {
		t.Fatalf("skater scoring leaked goalie fields: got=%v want=%v", asSkater, weights.Goals)
	}
	if asGoalie != Round(weights.Wins+20*weights.Saves) {
		t.Fatalf("goalie scoring leaked skater fields: got=%v", asGoalie)
	}
}

func TestPlayerPoints_MissingStatsAreZero(t *testing.T) {
	t.Parallel()

	line := statline.Zero("ghost", "2024-01-05")
	if got := PlayerPoints(roster.PositionLeftWing, line, DefaultWeights()); got != 0 {
		t.Fatalf("zero line must score zero, got %v", got)
	}
	if got := PlayerPoints(roster.PositionGoalie, line, DefaultWeights()); got != 0 {
		t.Fatalf("zero goalie line must score zero, got %v", got)
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	if got := Round(10.004999); got != 10.0 {
		t.Fatalf("unexpected rounding: got=%v want=10.0", got)
	}
	if got := Round(-1.005); got != -1.0 && got != -1.01 {
		t.Fatalf("unexpected negative rounding: got=%v", got)
	}
	if got := Round(0.1 + 0.2); got != 0.3 {
		t.Fatalf("unexpected float normalization: got=%v want=0.3", got)
	}
}
