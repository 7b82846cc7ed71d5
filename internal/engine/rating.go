package engine

import (
	"fmt"

	"shuffle-app/internal/model"
)

// Score is the rolling sum of a player's recent session ratings. It is an
// unnormalized sum, so a player with a short history scores lower.
func Score(p model.Player) float64 {
	sum := 0.0
	for _, r := range p.Previous5Ratio {
		sum += r
	}
	return sum
}

// Roster indexes players by id. Pairs and games only carry ids and resolve
// players through a Roster.
type Roster map[string]model.Player

func NewRoster(players []model.Player) Roster {
	r := make(Roster, len(players))
	for _, p := range players {
		r[p.ID] = p
	}
	return r
}

// Score returns 0 for an empty or unknown id, which is how an absent
// partner is counted in pair strength.
func (r Roster) Score(id string) float64 {
	if id == "" {
		return 0
	}
	p, ok := r[id]
	if !ok {
		return 0
	}
	return Score(p)
}

func (r Roster) PairStrength(p model.Pair) float64 {
	return r.Score(p.P1) + r.Score(p.P2)
}

// Resolve returns the players for ids in the given order.
func (r Roster) Resolve(ids []string) ([]model.Player, error) {
	players := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r[id]
		if !ok {
			return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
		}
		players = append(players, p)
	}
	return players, nil
}
