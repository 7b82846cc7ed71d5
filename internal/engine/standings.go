package engine

import (
	"sort"

	"shuffle-app/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type StandingEntry struct {
	PlayerID string       `json:"id"`
	Name     string       `json:"name"`
	Gender   model.Gender `json:"gender"`
	Points   int          `json:"score"`
	Played   int          `json:"played"`
}

type tally struct {
	points map[string]int
	played map[string]int
}

// tallyFinished credits every member of a pair with that pair's score, once
// per finished game.
func tallyFinished(schedule model.Schedule) tally {
	t := tally{points: map[string]int{}, played: map[string]int{}}
	for _, round := range schedule {
		for _, game := range round.Games {
			if game.Status != model.StatusFinished {
				continue
			}
			for _, id := range game.PairA.Members() {
				t.points[id] += game.ScoreA
				t.played[id]++
			}
			for _, id := range game.PairB.Members() {
				t.points[id] += game.ScoreB
				t.played[id]++
			}
		}
	}
	return t
}

// BuildStandings ranks the selected players by points from finished games.
// Ties are ordered by name using the collation rules of locale.
func BuildStandings(schedule model.Schedule, selected []model.Player, locale language.Tag) []StandingEntry {
	t := tallyFinished(schedule)
	standings := make([]StandingEntry, 0, len(selected))
	for _, p := range selected {
		standings = append(standings, StandingEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Gender:   p.EffectiveGender(),
			Points:   t.points[p.ID],
			Played:   t.played[p.ID],
		})
	}

	col := collate.New(locale)
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points == standings[j].Points {
			return col.CompareString(standings[i].Name, standings[j].Name) < 0
		}
		return standings[i].Points > standings[j].Points
	})
	return standings
}
