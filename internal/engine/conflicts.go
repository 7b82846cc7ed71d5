package engine

import (
	"sort"

	"shuffle-app/internal/model"
)

const ConflictMessage = "Warning: Duplicate partners detected (highlighted in red). Please swap players."

type partnerKey [2]string

func newPartnerKey(a, b string) partnerKey {
	if b < a {
		a, b = b, a
	}
	return partnerKey{a, b}
}

// ConflictReport lists partnerships that occur more than once in a schedule.
// It is derived from the schedule and must be rebuilt after every change.
type ConflictReport struct {
	PlayerIDs []string    `json:"playerIds"`
	Pairs     [][2]string `json:"pairs"`
	Message   string      `json:"message,omitempty"`
}

func (c ConflictReport) HasConflicts() bool {
	return len(c.Pairs) > 0
}

func (c ConflictReport) Has(playerID string) bool {
	for _, id := range c.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// DetectConflicts counts doubles partnerships across all rounds. Singles
// half-pairs have no partner and are ignored.
func DetectConflicts(schedule model.Schedule) ConflictReport {
	counts := map[partnerKey]int{}
	for _, round := range schedule {
		for _, game := range round.Games {
			for _, pair := range []model.Pair{game.PairA, game.PairB} {
				if pair.IsHalf() {
					continue
				}
				counts[newPartnerKey(pair.P1, pair.P2)]++
			}
		}
	}

	report := ConflictReport{PlayerIDs: []string{}, Pairs: [][2]string{}}
	flagged := map[string]struct{}{}
	for key, n := range counts {
		if n < 2 {
			continue
		}
		report.Pairs = append(report.Pairs, [2]string(key))
		flagged[key[0]] = struct{}{}
		flagged[key[1]] = struct{}{}
	}
	if len(report.Pairs) == 0 {
		return report
	}
	for id := range flagged {
		report.PlayerIDs = append(report.PlayerIDs, id)
	}
	sort.Strings(report.PlayerIDs)
	sort.Slice(report.Pairs, func(i, j int) bool {
		if report.Pairs[i][0] == report.Pairs[j][0] {
			return report.Pairs[i][1] < report.Pairs[j][1]
		}
		return report.Pairs[i][0] < report.Pairs[j][0]
	})
	report.Message = ConflictMessage
	return report
}
