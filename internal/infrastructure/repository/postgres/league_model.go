package postgres

import "time"

type leagueTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Season    string    `db:"season"`
	Timezone  string    `db:"timezone"`
	CreatedAt time.Time `db:"created_at"`
}

type teamTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}
