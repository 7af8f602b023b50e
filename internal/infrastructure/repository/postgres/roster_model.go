package postgres

import "time"

type currentLineupTableModel struct {
	TeamID      string    `db:"team_id"`
	Assignments string    `db:"assignments"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type currentLineupInsertModel struct {
	TeamID      string    `db:"team_id"`
	Assignments string    `db:"assignments"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type lineupSnapshotTableModel struct {
	TeamID      string    `db:"team_id"`
	Date        string    `db:"date"`
	Assignments string    `db:"assignments"`
	CapturedAt  time.Time `db:"captured_at"`
}

type lineupSnapshotInsertModel struct {
	TeamID      string    `db:"team_id"`
	Date        string    `db:"date"`
	Assignments string    `db:"assignments"`
	CapturedAt  time.Time `db:"captured_at"`
}
