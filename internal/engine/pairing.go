package engine

import (
	"slices"
	"sort"

	"shuffle-app/internal/model"
)

// PartnerHistory maps a player id to the ids they have already partnered
// in earlier rounds of the same generation.
type PartnerHistory map[string]map[string]struct{}

func (h PartnerHistory) Has(a, b string) bool {
	partners, ok := h[a]
	if !ok {
		return false
	}
	_, ok = partners[b]
	return ok
}

func (h PartnerHistory) Record(a, b string) {
	h.add(a, b)
	h.add(b, a)
}

func (h PartnerHistory) add(from, to string) {
	partners, ok := h[from]
	if !ok {
		partners = map[string]struct{}{}
		h[from] = partners
	}
	partners[to] = struct{}{}
}

// SortByScore returns a copy ordered strongest first. Equal scores keep
// their input order.
func SortByScore(players []model.Player) []model.Player {
	sorted := slices.Clone(players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Score(sorted[i]) > Score(sorted[j])
	})
	return sorted
}

// PairPlayers greedily pairs the strongest remaining player with a weak,
// preferably opposite-gender partner they have not played with yet. Every
// partnership made is recorded in history. A trailing odd player is left
// unpaired.
func PairPlayers(players []model.Player, history PartnerHistory) []model.Pair {
	pool := SortByScore(players)
	pairs := make([]model.Pair, 0, len(pool)/2)
	for len(pool) >= 2 {
		p1 := pool[0]
		pool = pool[1:]
		idx := pickPartner(p1, pool, history)
		p2 := pool[idx]
		pool = slices.Delete(pool, idx, idx+1)

		history.Record(p1.ID, p2.ID)
		pairs = append(pairs, model.Pair{
			P1:       p1.ID,
			P2:       p2.ID,
			Strength: Score(p1) + Score(p2),
		})
	}
	return pairs
}

// pickPartner scans candidates weakest to strongest. The first eligible
// candidate of the other gender wins; otherwise the weakest eligible one.
// With nobody eligible the weakest candidate is forced, repeating a
// partnership.
func pickPartner(p1 model.Player, candidates []model.Player, history PartnerHistory) int {
	weakestEligible := -1
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if history.Has(p1.ID, c.ID) {
			continue
		}
		if weakestEligible == -1 {
			weakestEligible = i
		}
		if c.EffectiveGender() != p1.EffectiveGender() {
			return i
		}
	}
	if weakestEligible == -1 {
		return len(candidates) - 1
	}
	return weakestEligible
}
