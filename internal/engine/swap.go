package engine

import (
	"fmt"

	"shuffle-app/internal/model"
)

// Location addresses one player slot. Round and Game are zero-based indexes.
type Location struct {
	Round int        `json:"round"`
	Game  int        `json:"game"`
	Side  model.Side `json:"side"`
	Slot  model.Slot `json:"slot"`
}

func (l Location) String() string {
	return fmt.Sprintf("r%d/g%d/%s%d", l.Round, l.Game, l.Side, l.Slot)
}

type SwapOutcome string

const (
	// SwapPending means the first slot was recorded and nothing changed yet.
	SwapPending SwapOutcome = "pending"
	SwapApplied SwapOutcome = "applied"
	// SwapCleared means the same slot was picked twice.
	SwapCleared SwapOutcome = "cleared"
)

// Swapper holds the first half of a two-click swap.
type Swapper struct {
	pending *Location
}

func (s *Swapper) Pending() (Location, bool) {
	if s.pending == nil {
		return Location{}, false
	}
	return *s.pending, true
}

func (s *Swapper) Cancel() {
	s.pending = nil
}

// Select records the first location, or swaps with the recorded one. Any
// second selection clears the pending slot, whether or not the swap is
// allowed.
func (s *Swapper) Select(schedule model.Schedule, roster Roster, loc Location) (SwapOutcome, error) {
	if s.pending == nil {
		if _, err := locate(schedule, loc); err != nil {
			return "", err
		}
		s.pending = &loc
		return SwapPending, nil
	}
	source := *s.pending
	s.pending = nil
	if source == loc {
		return SwapCleared, nil
	}
	if err := Swap(schedule, roster, source, loc); err != nil {
		return "", err
	}
	return SwapApplied, nil
}

// Swap exchanges the players at a and b in place and recomputes the
// strength of both touched pairs. The schedule is untouched on error.
func Swap(schedule model.Schedule, roster Roster, a, b Location) error {
	gameB, err := locate(schedule, b)
	if err != nil {
		return err
	}
	if gameB.Status == model.StatusFinished {
		return invalidOperation("Action Denied", "Cannot swap players in a finished game.")
	}
	if a.Round != b.Round {
		return invalidOperation("Invalid Swap", "You can only swap players within the same round.")
	}
	if a == b {
		return invalidOperation("Invalid Swap", "Pick two different players to swap.")
	}
	gameA, err := locate(schedule, a)
	if err != nil {
		return err
	}
	if gameA.Status == model.StatusFinished {
		return invalidOperation("Action Denied", "Cannot swap players in a finished game.")
	}

	pairA := gameA.Pair(a.Side)
	pairB := gameB.Pair(b.Side)
	idA := pairA.Player(a.Slot)
	idB := pairB.Player(b.Slot)
	pairA.SetPlayer(a.Slot, idB)
	pairB.SetPlayer(b.Slot, idA)
	pairA.Strength = roster.PairStrength(*pairA)
	pairB.Strength = roster.PairStrength(*pairB)
	return nil
}

// locate returns the game holding loc, rejecting slots that do not exist.
func locate(schedule model.Schedule, loc Location) (*model.Game, error) {
	if loc.Round < 0 || loc.Round >= len(schedule) {
		return nil, fmt.Errorf("round %d: %w", loc.Round, ErrNotFound)
	}
	games := schedule[loc.Round].Games
	if loc.Game < 0 || loc.Game >= len(games) {
		return nil, fmt.Errorf("game %d in round %d: %w", loc.Game, loc.Round, ErrNotFound)
	}
	if loc.Side != model.SideA && loc.Side != model.SideB {
		return nil, invalidOperation("Invalid Swap", fmt.Sprintf("Unknown side %q.", loc.Side))
	}
	if loc.Slot != model.Slot1 && loc.Slot != model.Slot2 {
		return nil, invalidOperation("Invalid Swap", fmt.Sprintf("Unknown slot %d.", loc.Slot))
	}
	game := &games[loc.Game]
	if game.Pair(loc.Side).Player(loc.Slot) == "" {
		return nil, invalidOperation("Invalid Swap", "That slot is empty.")
	}
	return game, nil
}
