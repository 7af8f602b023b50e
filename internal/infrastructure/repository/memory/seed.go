package memory

import (
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/domain/team"
)

// Demo league for memory mode: one four-team league, one finished week and
// one week in flight.
const (
	SeedLeagueID = "glhl-2023-24"

	SeedTeamIceHogs  = "glhl-icehogs"
	SeedTeamMonarchs = "glhl-monarchs"
	SeedTeamAdmirals = "glhl-admirals"
	SeedTeamThunder  = "glhl-thunder"

	seedWeek1Start = gameday.Date("2024-01-01")
	seedWeek1End   = gameday.Date("2024-01-07")
	seedWeek2Start = gameday.Date("2024-01-08")
	seedWeek2End   = gameday.Date("2024-01-14")
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:       SeedLeagueID,
			Name:     "Great Lakes Hockey League",
			Season:   "2023-24",
			Timezone: "America/New_York",
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: SeedTeamIceHogs, LeagueID: SeedLeagueID, Name: "Rockford Ice Hogs", OwnerID: "owner-ice"},
		{ID: SeedTeamMonarchs, LeagueID: SeedLeagueID, Name: "Manchester Monarchs", OwnerID: "owner-mon"},
		{ID: SeedTeamAdmirals, LeagueID: SeedLeagueID, Name: "Milwaukee Admirals", OwnerID: "owner-adm"},
		{ID: SeedTeamThunder, LeagueID: SeedLeagueID, Name: "Wichita Thunder", OwnerID: "owner-thu"},
	}
}

func SeedMatchups() []matchup.Matchup {
	return []matchup.Matchup{
		{
			ID:         "glhl-w1-icehogs-monarchs",
			LeagueID:   SeedLeagueID,
			Week:       1,
			HomeTeamID: SeedTeamIceHogs,
			AwayTeamID: SeedTeamMonarchs,
			StartDate:  seedWeek1Start,
			EndDate:    seedWeek1End,
			Status:     matchup.StatusCompleted,
		},
		{
			ID:         "glhl-w1-admirals-thunder",
			LeagueID:   SeedLeagueID,
			Week:       1,
			HomeTeamID: SeedTeamAdmirals,
			AwayTeamID: SeedTeamThunder,
			StartDate:  seedWeek1Start,
			EndDate:    seedWeek1End,
			Status:     matchup.StatusCompleted,
		},
		{
			ID:         "glhl-w2-icehogs-admirals",
			LeagueID:   SeedLeagueID,
			Week:       2,
			HomeTeamID: SeedTeamIceHogs,
			AwayTeamID: SeedTeamAdmirals,
			StartDate:  seedWeek2Start,
			EndDate:    seedWeek2End,
			Status:     matchup.StatusInProgress,
		},
		{
			ID:         "glhl-w2-monarchs-thunder",
			LeagueID:   SeedLeagueID,
			Week:       2,
			HomeTeamID: SeedTeamMonarchs,
			AwayTeamID: SeedTeamThunder,
			StartDate:  seedWeek2Start,
			EndDate:    seedWeek2End,
			Status:     matchup.StatusInProgress,
		},
	}
}

func SeedSettings() []scoring.Settings {
	return []scoring.Settings{
		{
			LeagueID:  SeedLeagueID,
			Version:   1,
			Weights:   scoring.DefaultWeights(),
			UpdatedAt: seedWeek1Start.Time(time.UTC),
		},
	}
}

func seedRosters() map[string][]roster.Assignment {
	return map[string][]roster.Assignment{
		SeedTeamIceHogs: {
			{PlayerID: "nhl-c-bedard", Position: roster.PositionCenter, Slot: roster.SlotActive},
			{PlayerID: "nhl-lw-raymond", Position: roster.PositionLeftWing, Slot: roster.SlotActive},
			{PlayerID: "nhl-d-seider", Position: roster.PositionDefenseman, Slot: roster.SlotActive},
			{PlayerID: "nhl-g-oettinger", Position: roster.PositionGoalie, Slot: roster.SlotActive},
			{PlayerID: "nhl-rw-laine", Position: roster.PositionRightWing, Slot: roster.SlotBench},
		},
		SeedTeamMonarchs: {
			{PlayerID: "nhl-c-hughes", Position: roster.PositionCenter, Slot: roster.SlotActive},
			{PlayerID: "nhl-rw-caufield", Position: roster.PositionRightWing, Slot: roster.SlotActive},
			{PlayerID: "nhl-d-fox", Position: roster.PositionDefenseman, Slot: roster.SlotActive},
			{PlayerID: "nhl-g-shesterkin", Position: roster.PositionGoalie, Slot: roster.SlotActive},
			{PlayerID: "nhl-c-zegras", Position: roster.PositionCenter, Slot: roster.SlotReserve},
		},
		SeedTeamAdmirals: {
			{PlayerID: "nhl-c-mcdavid", Position: roster.PositionCenter, Slot: roster.SlotActive},
			{PlayerID: "nhl-lw-hyman", Position: roster.PositionLeftWing, Slot: roster.SlotActive},
			{PlayerID: "nhl-d-bouchard", Position: roster.PositionDefenseman, Slot: roster.SlotActive},
			{PlayerID: "nhl-g-skinner", Position: roster.PositionGoalie, Slot: roster.SlotActive},
		},
		SeedTeamThunder: {
			{PlayerID: "nhl-c-matthews", Position: roster.PositionCenter, Slot: roster.SlotActive},
			{PlayerID: "nhl-rw-marner", Position: roster.PositionRightWing, Slot: roster.SlotActive},
			{PlayerID: "nhl-d-rielly", Position: roster.PositionDefenseman, Slot: roster.SlotActive},
			{PlayerID: "nhl-g-woll", Position: roster.PositionGoalie, Slot: roster.SlotActive},
		},
	}
}

func SeedLineups() []roster.Lineup {
	rosters := seedRosters()
	out := make([]roster.Lineup, 0, len(rosters))
	for _, t := range SeedTeams() {
		out = append(out, roster.Lineup{
			TeamID:      t.ID,
			Assignments: rosters[t.ID],
			UpdatedAt:   seedWeek2Start.Time(time.UTC),
		})
	}
	return out
}

// SeedSnapshots freezes the same roster for every day of week one.
func SeedSnapshots() []roster.Snapshot {
	rosters := seedRosters()
	out := make([]roster.Snapshot, 0)
	for _, t := range SeedTeams() {
		for _, d := range gameday.Range(seedWeek1Start, seedWeek1End) {
			out = append(out, roster.Snapshot{
				TeamID:      t.ID,
				Date:        d,
				Assignments: rosters[t.ID],
				CapturedAt:  d.Time(time.UTC),
			})
		}
	}
	return out
}

func SeedCompleteDays() []gameday.Date {
	return gameday.Range(seedWeek1Start, seedWeek1End)
}

func SeedStatLines() []statline.StatLine {
	return []statline.StatLine{
		{PlayerID: "nhl-c-bedard", Date: "2024-01-01", Goals: 1, Assists: 2, ShotsOnGoal: 5},
		{PlayerID: "nhl-c-bedard", Date: "2024-01-03", Goals: 2, PowerPlayPoints: 1, ShotsOnGoal: 7},
		{PlayerID: "nhl-lw-raymond", Date: "2024-01-01", Assists: 1, Hits: 2, Blocks: 1},
		{PlayerID: "nhl-lw-raymond", Date: "2024-01-05", Goals: 1, ShotsOnGoal: 3},
		{PlayerID: "nhl-d-seider", Date: "2024-01-03", Assists: 1, Blocks: 4, Hits: 3},
		{PlayerID: "nhl-g-oettinger", Date: "2024-01-01", Wins: 1, Saves: 28, GoalsAgainst: 2},
		{PlayerID: "nhl-g-oettinger", Date: "2024-01-05", Saves: 31, GoalsAgainst: 4},

		{PlayerID: "nhl-c-hughes", Date: "2024-01-01", Goals: 1, Assists: 1, ShotsOnGoal: 6},
		{PlayerID: "nhl-c-hughes", Date: "2024-01-05", Goals: 1, PowerPlayPoints: 1, ShotsOnGoal: 4},
		{PlayerID: "nhl-rw-caufield", Date: "2024-01-03", Goals: 2, ShotsOnGoal: 8},
		{PlayerID: "nhl-d-fox", Date: "2024-01-01", Assists: 2, Blocks: 3},
		{PlayerID: "nhl-g-shesterkin", Date: "2024-01-03", Wins: 1, Saves: 35, GoalsAgainst: 1, Shutouts: 0},

		{PlayerID: "nhl-c-mcdavid", Date: "2024-01-01", Goals: 1, Assists: 3, ShotsOnGoal: 6},
		{PlayerID: "nhl-c-mcdavid", Date: "2024-01-03", Assists: 2, PowerPlayPoints: 2, ShotsOnGoal: 5},
		{PlayerID: "nhl-c-mcdavid", Date: "2024-01-06", Goals: 2, Assists: 1, ShotsOnGoal: 9},
		{PlayerID: "nhl-lw-hyman", Date: "2024-01-01", Goals: 1, Hits: 4, ShotsOnGoal: 5},
		{PlayerID: "nhl-d-bouchard", Date: "2024-01-06", Assists: 1, ShotsOnGoal: 4, Blocks: 2},
		{PlayerID: "nhl-g-skinner", Date: "2024-01-03", Wins: 1, Saves: 24, GoalsAgainst: 3},

		{PlayerID: "nhl-c-matthews", Date: "2024-01-01", Goals: 2, ShotsOnGoal: 10},
		{PlayerID: "nhl-c-matthews", Date: "2024-01-06", Goals: 1, Assists: 1, ShotsOnGoal: 7},
		{PlayerID: "nhl-rw-marner", Date: "2024-01-03", Assists: 2, ShortHandedPoints: 1},
		{PlayerID: "nhl-d-rielly", Date: "2024-01-01", Assists: 1, Blocks: 2, PlusMinus: 2},
		{PlayerID: "nhl-g-woll", Date: "2024-01-06", Wins: 1, Saves: 33, GoalsAgainst: 2, Shutouts: 0},
	}
}
