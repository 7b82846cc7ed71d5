package engine

import (
	"fmt"
	"sort"

	"shuffle-app/internal/model"
)

// Toggle cycles a game's status by hand. Reopening a finished game throws
// its score away.
func Toggle(g *model.Game) {
	switch g.Status {
	case model.StatusAwaiting:
		g.Status = model.StatusInPlay
	case model.StatusInPlay:
		g.Status = model.StatusAwaiting
	case model.StatusFinished:
		g.Status = model.StatusAwaiting
		g.ScoreA = 0
		g.ScoreB = 0
	default:
		g.Status = model.StatusAwaiting
	}
}

// SetScore records side A's games won; side B gets the rest of the match.
func SetScore(g *model.Game, scoreA, gamesPerMatch int) error {
	if g.Status == model.StatusFinished {
		return invalidOperation("Action Denied", "This game is already finished. Reopen it before entering a new score.")
	}
	if scoreA < 0 || scoreA > gamesPerMatch {
		return invalidOperation("Invalid Score", fmt.Sprintf("Score must be between 0 and %d.", gamesPerMatch))
	}
	g.ScoreA = scoreA
	g.ScoreB = gamesPerMatch - scoreA
	g.Status = model.StatusFinished
	return nil
}

// PlayerSet is a set of player ids.
type PlayerSet map[string]struct{}

func (s PlayerSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s PlayerSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActivePlayers is everyone in a game that is currently in play.
func ActivePlayers(schedule model.Schedule) PlayerSet {
	active := PlayerSet{}
	for _, round := range schedule {
		for _, game := range round.Games {
			if game.Status != model.StatusInPlay {
				continue
			}
			for _, id := range game.PlayerIDs() {
				active[id] = struct{}{}
			}
		}
	}
	return active
}

// ScheduledPlayers is everyone who appears anywhere in the schedule.
func ScheduledPlayers(schedule model.Schedule) PlayerSet {
	all := PlayerSet{}
	for _, round := range schedule {
		for _, game := range round.Games {
			for _, id := range game.PlayerIDs() {
				all[id] = struct{}{}
			}
		}
	}
	return all
}

// PendingPlayers is everyone holding a slot in a game that is not finished.
func PendingPlayers(schedule model.Schedule) PlayerSet {
	pending := PlayerSet{}
	for _, round := range schedule {
		for _, game := range round.Games {
			if game.Status == model.StatusFinished {
				continue
			}
			for _, id := range game.PlayerIDs() {
				pending[id] = struct{}{}
			}
		}
	}
	return pending
}

func HasFinishedGames(schedule model.Schedule) bool {
	for _, round := range schedule {
		for _, game := range round.Games {
			if game.Status == model.StatusFinished {
				return true
			}
		}
	}
	return false
}

// GameRef is a game together with its position in the schedule.
type GameRef struct {
	RoundNumber int        `json:"roundNumber"`
	RoundIndex  int        `json:"roundIndex"`
	GameIndex   int        `json:"gameIndex"`
	Game        model.Game `json:"game"`
}

func FindGame(schedule model.Schedule, gameID string) (GameRef, error) {
	for ri, round := range schedule {
		for gi, game := range round.Games {
			if game.ID == gameID {
				return GameRef{RoundNumber: round.RoundNumber, RoundIndex: ri, GameIndex: gi, Game: game}, nil
			}
		}
	}
	return GameRef{}, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
}

// InPlayGames lists the games on court right now.
func InPlayGames(schedule model.Schedule) []GameRef {
	return filterGames(schedule, func(g model.Game) bool {
		return g.Status == model.StatusInPlay
	})
}

// QueuedGames lists awaiting games that could start now because none of
// their players is busy in another game.
func QueuedGames(schedule model.Schedule) []GameRef {
	active := ActivePlayers(schedule)
	return filterGames(schedule, func(g model.Game) bool {
		if g.Status != model.StatusAwaiting {
			return false
		}
		for _, id := range g.PlayerIDs() {
			if active.Has(id) {
				return false
			}
		}
		return true
	})
}

func filterGames(schedule model.Schedule, keep func(model.Game) bool) []GameRef {
	refs := []GameRef{}
	for ri, round := range schedule {
		for gi, game := range round.Games {
			if keep(game) {
				refs = append(refs, GameRef{RoundNumber: round.RoundNumber, RoundIndex: ri, GameIndex: gi, Game: game})
			}
		}
	}
	return refs
}
