package gameday

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and storage format for a league-local calendar day.
const Layout = "2006-01-02"

// Date is one calendar day in a league's reference timezone. The ISO form
// compares lexicographically, so Before/After work on the raw string.
type Date string

func Parse(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if _, err := time.Parse(Layout, trimmed); err != nil {
		return "", fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date(trimmed), nil
}

// FromTime converts an instant to the calendar day it falls on in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc).Format(Layout))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

func (d Date) After(other Date) bool {
	return string(d) > string(other)
}

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(Layout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) Next() Date {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, 1), time.UTC)
}

// Range returns every day from start through end inclusive.
func Range(start, end Date) []Date {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	out := make([]Date, 0, 8)
	for d := start; !d.After(end); d = d.Next() {
		out = append(out, d)
	}
	return out
}
