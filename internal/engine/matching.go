package engine

import (
	"slices"
	"sort"

	"shuffle-app/internal/model"

	"github.com/google/uuid"
)

var newGameID = uuid.NewString

// MatchPairs turns a round's pairs into games. Pairs are ranked by strength
// and neighbours meet (1st v 2nd, 3rd v 4th, ...). A leftover pair is split
// into a singles game between the two former partners.
func MatchPairs(pairs []model.Pair, roster Roster) []model.Game {
	ranked := slices.Clone(pairs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Strength > ranked[j].Strength
	})

	games := make([]model.Game, 0, (len(ranked)+1)/2)
	for len(ranked) >= 2 {
		games = append(games, model.Game{
			ID:     newGameID(),
			Type:   model.GameDoubles,
			PairA:  ranked[0],
			PairB:  ranked[1],
			Status: model.StatusAwaiting,
		})
		ranked = ranked[2:]
	}
	if len(ranked) == 1 {
		leftover := ranked[0]
		games = append(games, model.Game{
			ID:     newGameID(),
			Type:   model.GameSingles,
			PairA:  model.Pair{P1: leftover.P1, Strength: roster.Score(leftover.P1)},
			PairB:  model.Pair{P1: leftover.P2, Strength: roster.Score(leftover.P2)},
			Status: model.StatusAwaiting,
		})
	}
	return games
}
