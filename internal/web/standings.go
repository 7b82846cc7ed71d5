package web

import "shuffle-app/internal/engine"

type StandingRow struct {
	Rank int `json:"rank"`
	engine.StandingEntry
}

// rankStandings numbers already sorted entries. Players level on points
// share a rank and the next rank skips accordingly (1, 1, 3).
func rankStandings(entries []engine.StandingEntry) []StandingRow {
	rows := make([]StandingRow, 0, len(entries))
	for i, entry := range entries {
		rank := i + 1
		if i > 0 && entry.Points == entries[i-1].Points {
			rank = rows[i-1].Rank
		}
		rows = append(rows, StandingRow{Rank: rank, StandingEntry: entry})
	}
	return rows
}
