package gameday

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	if _, err := Parse("2024-01-05"); err != nil {
		t.Fatalf("parse valid date failed: %v", err)
	}
	if _, err := Parse("01/05/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestFromTime_TimezoneBoundary(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 02:30 UTC is still the previous evening on the US east coast.
	instant := time.Date(2024, 1, 6, 2, 30, 0, 0, time.UTC)
	if got := FromTime(instant, loc); got != Date("2024-01-05") {
		t.Fatalf("unexpected local day: got=%s want=2024-01-05", got)
	}
	if got := FromTime(instant, time.UTC); got != Date("2024-01-06") {
		t.Fatalf("unexpected utc day: got=%s want=2024-01-06", got)
	}
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	earlier := Date("2024-01-05")
	later := Date("2024-01-11")
	if !earlier.Before(later) {
		t.Fatal("expected earlier.Before(later)")
	}
	if !later.After(earlier) {
		t.Fatal("expected later.After(earlier)")
	}
	if earlier.Before(earlier) || earlier.After(earlier) {
		t.Fatal("date must not order before or after itself")
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	days := Range(Date("2024-01-05"), Date("2024-01-11"))
	if len(days) != 7 {
		t.Fatalf("unexpected range length: got=%d want=7", len(days))
	}
	if days[0] != Date("2024-01-05") || days[6] != Date("2024-01-11") {
		t.Fatalf("unexpected range bounds: %v", days)
	}

	if got := Range(Date("2024-01-11"), Date("2024-01-05")); got != nil {
		t.Fatalf("inverted range must be nil, got %v", got)
	}
	single := Range(Date("2024-01-05"), Date("2024-01-05"))
	if len(single) != 1 {
		t.Fatalf("single-day range length: got=%d want=1", len(single))
	}
}
