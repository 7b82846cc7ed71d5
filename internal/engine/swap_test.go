package engine

import (
	"errors"
	"testing"

	"shuffle-app/internal/model"

	"github.com/stretchr/testify/require"
)

func swapFixture(t *testing.T) (model.Schedule, Roster) {
	t.Helper()
	players := club(14)
	schedule, err := Generate(players, 3, 7)
	require.NoError(t, err)
	return schedule, NewRoster(players)
}

func TestSwap_SelfInverse(t *testing.T) {
	schedule, roster := swapFixture(t)
	original := schedule.Clone()

	a := Location{Round: 1, Game: 0, Side: model.SideA, Slot: model.Slot1}
	b := Location{Round: 1, Game: 2, Side: model.SideB, Slot: model.Slot2}
	idA := schedule[1].Games[0].PairA.P1
	idB := schedule[1].Games[2].PairB.P2

	require.NoError(t, Swap(schedule, roster, a, b))
	require.Equal(t, idB, schedule[1].Games[0].PairA.P1)
	require.Equal(t, idA, schedule[1].Games[2].PairB.P2)
	require.InDelta(t, roster.PairStrength(schedule[1].Games[0].PairA), schedule[1].Games[0].PairA.Strength, 1e-9)
	require.InDelta(t, roster.PairStrength(schedule[1].Games[2].PairB), schedule[1].Games[2].PairB.Strength, 1e-9)

	require.NoError(t, Swap(schedule, roster, b, a))
	require.Equal(t, original, schedule)
}

func TestSwap_WithSinglesHalfPair(t *testing.T) {
	schedule, roster := swapFixture(t)
	// 14 players make 7 pairs, so the last game of each round is singles.
	last := len(schedule[0].Games) - 1
	require.Equal(t, model.GameSingles, schedule[0].Games[last].Type)

	single := Location{Round: 0, Game: last, Side: model.SideB, Slot: model.Slot1}
	other := Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot2}
	soloID := schedule[0].Games[last].PairB.P1

	require.NoError(t, Swap(schedule, roster, single, other))
	require.Equal(t, soloID, schedule[0].Games[0].PairA.P2)
	require.True(t, schedule[0].Games[last].PairB.IsHalf())
	require.InDelta(t, roster.Score(schedule[0].Games[last].PairB.P1), schedule[0].Games[last].PairB.Strength, 1e-9)

	emptySlot := Location{Round: 0, Game: last, Side: model.SideA, Slot: model.Slot2}
	var opErr *InvalidOperationError
	require.ErrorAs(t, Swap(schedule, roster, other, emptySlot), &opErr)
}

func TestSwap_Rejections(t *testing.T) {
	schedule, roster := swapFixture(t)
	schedule[0].Games[1].Status = model.StatusFinished
	before := schedule.Clone()

	tests := []struct {
		name  string
		a, b  Location
		title string
	}{
		{
			name:  "target finished",
			a:     Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot1},
			b:     Location{Round: 0, Game: 1, Side: model.SideA, Slot: model.Slot1},
			title: "Action Denied",
		},
		{
			name:  "source finished",
			a:     Location{Round: 0, Game: 1, Side: model.SideA, Slot: model.Slot1},
			b:     Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot1},
			title: "Action Denied",
		},
		{
			name:  "different rounds",
			a:     Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot1},
			b:     Location{Round: 1, Game: 0, Side: model.SideA, Slot: model.Slot1},
			title: "Invalid Swap",
		},
		{
			name:  "same slot",
			a:     Location{Round: 2, Game: 0, Side: model.SideB, Slot: model.Slot2},
			b:     Location{Round: 2, Game: 0, Side: model.SideB, Slot: model.Slot2},
			title: "Invalid Swap",
		},
		{
			name:  "bad side",
			a:     Location{Round: 2, Game: 0, Side: model.SideB, Slot: model.Slot2},
			b:     Location{Round: 2, Game: 1, Side: "C", Slot: model.Slot2},
			title: "Invalid Swap",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opErr *InvalidOperationError
			require.ErrorAs(t, Swap(schedule, roster, tt.a, tt.b), &opErr)
			require.Equal(t, tt.title, opErr.Title)
			require.Equal(t, before, schedule)
		})
	}

	err := Swap(schedule, roster, Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot1}, Location{Round: 0, Game: 99, Side: model.SideA, Slot: model.Slot1})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSwapper_TwoStepSelection(t *testing.T) {
	schedule, roster := swapFixture(t)
	before := schedule.Clone()
	var sw Swapper

	a := Location{Round: 0, Game: 0, Side: model.SideA, Slot: model.Slot1}
	b := Location{Round: 0, Game: 1, Side: model.SideB, Slot: model.Slot1}

	outcome, err := sw.Select(schedule, roster, a)
	require.NoError(t, err)
	require.Equal(t, SwapPending, outcome)
	require.Equal(t, before, schedule, "first selection must not mutate")
	pending, ok := sw.Pending()
	require.True(t, ok)
	require.Equal(t, a, pending)

	outcome, err = sw.Select(schedule, roster, a)
	require.NoError(t, err)
	require.Equal(t, SwapCleared, outcome)
	require.Equal(t, before, schedule)
	_, ok = sw.Pending()
	require.False(t, ok)

	_, _ = sw.Select(schedule, roster, a)
	outcome, err = sw.Select(schedule, roster, b)
	require.NoError(t, err)
	require.Equal(t, SwapApplied, outcome)
	require.Equal(t, before[0].Games[0].PairA.P1, schedule[0].Games[1].PairB.P1)

	_, _ = sw.Select(schedule, roster, a)
	_, err = sw.Select(schedule, roster, Location{Round: 1, Game: 0, Side: model.SideA, Slot: model.Slot1})
	var opErr *InvalidOperationError
	require.ErrorAs(t, err, &opErr)
	_, ok = sw.Pending()
	require.False(t, ok, "a rejected swap clears the selection")

	_, _ = sw.Select(schedule, roster, a)
	sw.Cancel()
	_, ok = sw.Pending()
	require.False(t, ok)
}
