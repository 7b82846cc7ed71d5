package engine

import (
	"fmt"
	"slices"

	"shuffle-app/internal/model"
)

const (
	MaxPlayers           = 40
	DefaultGamesPerMatch = 7
	DefaultNumRounds     = 3
)

var (
	GamesPerMatchOptions = []int{5, 7, 11}
	NumRoundsOptions     = []int{3, 5, 7}
)

// minPlayersForRounds lists how many players a schedule of at least that
// many rounds needs. Checked in order, smallest round count first.
var minPlayersForRounds = []struct {
	rounds  int
	players int
}{
	{rounds: 3, players: 12},
	{rounds: 5, players: 20},
	{rounds: 7, players: 32},
}

// ValidateRoster checks the player count against the requested number of
// rounds. The first failing rule is reported; size rules come before parity
// so a short roster is told how many players it needs.
func ValidateRoster(count, numRounds int) error {
	if count == 0 {
		return &ValidationError{Message: "No players selected."}
	}
	for _, rule := range minPlayersForRounds {
		if numRounds >= rule.rounds && count < rule.players {
			return &ValidationError{Message: fmt.Sprintf("For %d Rounds, you need at least %d players.", rule.rounds, rule.players)}
		}
	}
	if count%2 != 0 {
		return &ValidationError{Message: "Number of players must be even."}
	}
	if count > MaxPlayers {
		return &ValidationError{Message: fmt.Sprintf("Maximum %d players allowed.", MaxPlayers)}
	}
	return nil
}

func ValidateConfig(numRounds, gamesPerMatch int) error {
	if !slices.Contains(NumRoundsOptions, numRounds) {
		return &ValidationError{Message: fmt.Sprintf("Number of rounds must be one of %v.", NumRoundsOptions)}
	}
	if !slices.Contains(GamesPerMatchOptions, gamesPerMatch) {
		return &ValidationError{Message: fmt.Sprintf("Games per match must be one of %v.", GamesPerMatchOptions)}
	}
	return nil
}

// Generate builds a complete schedule of numRounds rounds. Partner history
// spans all rounds of this call, so later rounds steer away from earlier
// partnerships.
func Generate(players []model.Player, numRounds, gamesPerMatch int) (model.Schedule, error) {
	if err := ValidateRoster(len(players), numRounds); err != nil {
		return nil, err
	}
	if err := ValidateConfig(numRounds, gamesPerMatch); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup {
			return nil, &ValidationError{Message: fmt.Sprintf("Player %s is selected twice.", p.Name)}
		}
		seen[p.ID] = struct{}{}
	}

	roster := NewRoster(players)
	history := PartnerHistory{}
	schedule := make(model.Schedule, 0, numRounds)
	for r := 1; r <= numRounds; r++ {
		pairs := PairPlayers(players, history)
		schedule = append(schedule, model.Round{
			RoundNumber: r,
			Games:       MatchPairs(pairs, roster),
			SitOuts:     []string{},
		})
	}
	return schedule, nil
}
