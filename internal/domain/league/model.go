package league

import "time"

// League owns the scoring configuration and the reference timezone that
// decides when a calendar day rolls over for every team in it.
type League struct {
	ID        string
	Name      string
	Season    string
	Timezone  string
	CreatedAt time.Time
}

// Location resolves the league's reference timezone, falling back to UTC
// when the stored name is empty or unknown.
func (l League) Location() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
