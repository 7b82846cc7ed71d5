package engine

import (
	"errors"
	"testing"

	"shuffle-app/internal/model"

	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	g := doubles("g", "a", "b", "c", "d", model.StatusAwaiting, 0, 0)

	Toggle(&g)
	require.Equal(t, model.StatusInPlay, g.Status)
	Toggle(&g)
	require.Equal(t, model.StatusAwaiting, g.Status)

	g.Status = model.StatusFinished
	g.ScoreA, g.ScoreB = 4, 3
	Toggle(&g)
	require.Equal(t, model.StatusAwaiting, g.Status)
	require.Zero(t, g.ScoreA)
	require.Zero(t, g.ScoreB)
}

func TestSetScore(t *testing.T) {
	g := doubles("g", "a", "b", "c", "d", model.StatusInPlay, 0, 0)
	require.NoError(t, SetScore(&g, 4, 7))
	require.Equal(t, 4, g.ScoreA)
	require.Equal(t, 3, g.ScoreB)
	require.Equal(t, model.StatusFinished, g.Status)

	var opErr *InvalidOperationError
	err := SetScore(&g, 5, 7)
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, 4, g.ScoreA, "finished game keeps its score")

	awaiting := doubles("h", "a", "b", "c", "d", model.StatusAwaiting, 0, 0)
	require.NoError(t, SetScore(&awaiting, 0, 11))
	require.Equal(t, 11, awaiting.ScoreB)

	bad := doubles("i", "a", "b", "c", "d", model.StatusAwaiting, 0, 0)
	require.ErrorAs(t, SetScore(&bad, 8, 7), &opErr)
	require.ErrorAs(t, SetScore(&bad, -1, 7), &opErr)
	require.Equal(t, model.StatusAwaiting, bad.Status)
}

func liveSchedule() model.Schedule {
	return model.Schedule{
		{RoundNumber: 1, Games: []model.Game{
			doubles("g1", "a", "b", "c", "d", model.StatusInPlay, 0, 0),
			doubles("g2", "e", "f", "g", "h", model.StatusFinished, 5, 2),
		}},
		{RoundNumber: 2, Games: []model.Game{
			doubles("g3", "a", "c", "e", "g", model.StatusAwaiting, 0, 0),
			doubles("g4", "b", "h", "f", "i", model.StatusAwaiting, 0, 0),
			singles("g5", "e", "f", model.StatusAwaiting, 0, 0),
		}},
	}
}

func TestActivePlayersAndViews(t *testing.T) {
	schedule := liveSchedule()

	active := ActivePlayers(schedule)
	require.Equal(t, []string{"a", "b", "c", "d"}, active.IDs())
	require.True(t, HasFinishedGames(schedule))
	require.False(t, HasFinishedGames(schedule[1:]))

	inPlay := InPlayGames(schedule)
	require.Len(t, inPlay, 1)
	require.Equal(t, "g1", inPlay[0].Game.ID)

	queued := QueuedGames(schedule)
	require.Len(t, queued, 1)
	require.Equal(t, "g5", queued[0].Game.ID)
	require.Equal(t, 2, queued[0].RoundNumber)
	require.Equal(t, 1, queued[0].RoundIndex)
	require.Equal(t, 2, queued[0].GameIndex)

	require.Len(t, ScheduledPlayers(schedule), 9)
}

func TestFindGame(t *testing.T) {
	schedule := liveSchedule()
	ref, err := FindGame(schedule, "g4")
	require.NoError(t, err)
	require.Equal(t, 1, ref.RoundIndex)
	require.Equal(t, 1, ref.GameIndex)

	_, err = FindGame(schedule, "nope")
	require.True(t, errors.Is(err, ErrNotFound))
}
