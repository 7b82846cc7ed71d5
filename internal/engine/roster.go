package engine

import (
	"strings"

	"shuffle-app/internal/model"

	"github.com/google/uuid"
)

// SeedHistory gives a new player five identical ratings for their level so
// they are placed sensibly before they have played a session.
func SeedHistory(level model.Level) []float64 {
	var r float64
	switch level {
	case model.LevelA:
		r = 1
	case model.LevelC:
		r = 5
	default:
		r = 2.5
	}
	history := make([]float64, model.MaxRatingHistory)
	for i := range history {
		history[i] = r
	}
	return history
}

func NewPlayer(name string, gender model.Gender, level model.Level) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, invalidOperation("Validation", "Name cannot be empty")
	}
	if gender != model.GenderFemale {
		gender = model.GenderMale
	}
	switch level {
	case model.LevelA, model.LevelB, model.LevelC:
	default:
		level = model.LevelB
	}
	return model.Player{
		ID:             uuid.NewString(),
		Name:           name,
		Gender:         gender,
		Level:          level,
		Previous5Ratio: SeedHistory(level),
	}, nil
}

// EditPlayer changes a player's name and gender. History and level stay.
func EditPlayer(p model.Player, name string, gender model.Gender) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, invalidOperation("Validation", "Name cannot be empty")
	}
	p.Name = name
	if gender == model.GenderFemale || gender == model.GenderMale {
		p.Gender = gender
	}
	return p, nil
}

// Substitute puts newID in every unfinished slot held by oldID and
// recomputes the strength of each touched pair. Finished games keep the
// player who actually played them. It returns the number of slots changed.
func Substitute(schedule model.Schedule, roster Roster, oldID, newID string) int {
	changed := 0
	if oldID == "" {
		return changed
	}
	for ri := range schedule {
		games := schedule[ri].Games
		for gi := range games {
			game := &games[gi]
			if game.Status == model.StatusFinished {
				continue
			}
			for _, side := range []model.Side{model.SideA, model.SideB} {
				pair := game.Pair(side)
				touched := false
				for _, slot := range []model.Slot{model.Slot1, model.Slot2} {
					if pair.Player(slot) == oldID {
						pair.SetPlayer(slot, newID)
						touched = true
						changed++
					}
				}
				if touched {
					pair.Strength = roster.PairStrength(*pair)
				}
			}
		}
	}
	return changed
}
