package engine

import (
	"fmt"
	"testing"

	"shuffle-app/internal/model"

	"github.com/stretchr/testify/require"
)

func player(id string, gender model.Gender, ratings ...float64) model.Player {
	return model.Player{ID: id, Name: id, Gender: gender, Previous5Ratio: ratings}
}

// club builds n players with alternating gender and spread-out ratings.
func club(n int) []model.Player {
	players := make([]model.Player, 0, n)
	for i := 0; i < n; i++ {
		gender := model.GenderMale
		if i%2 == 1 {
			gender = model.GenderFemale
		}
		r := float64(i%5) + 0.5
		players = append(players, player(fmt.Sprintf("p%02d", i), gender, r, r, r))
	}
	return players
}

func requireEveryoneOncePerRound(t *testing.T, schedule model.Schedule, players []model.Player) {
	t.Helper()
	for _, round := range schedule {
		seen := map[string]int{}
		for _, game := range round.Games {
			for _, id := range game.PlayerIDs() {
				seen[id]++
			}
		}
		require.Len(t, seen, len(players), "round %d", round.RoundNumber)
		for _, p := range players {
			require.Equal(t, 1, seen[p.ID], "round %d player %s", round.RoundNumber, p.ID)
		}
	}
}

func doubles(id string, a1, a2, b1, b2 string, status model.GameStatus, scoreA, scoreB int) model.Game {
	return model.Game{
		ID:     id,
		Type:   model.GameDoubles,
		PairA:  model.Pair{P1: a1, P2: a2},
		PairB:  model.Pair{P1: b1, P2: b2},
		Status: status,
		ScoreA: scoreA,
		ScoreB: scoreB,
	}
}

func singles(id string, a, b string, status model.GameStatus, scoreA, scoreB int) model.Game {
	return model.Game{
		ID:     id,
		Type:   model.GameSingles,
		PairA:  model.Pair{P1: a},
		PairB:  model.Pair{P1: b},
		Status: status,
		ScoreA: scoreA,
		ScoreB: scoreB,
	}
}
