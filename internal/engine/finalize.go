package engine

import (
	"math"
	"slices"

	"shuffle-app/internal/model"
)

const MaxSessionRating = 5.0

// SessionRating converts a session's results into a 0–5 rating: average
// games won per match, as a share of the match length, scaled to 5.
func SessionRating(points, played, gamesPerMatch int) float64 {
	rating := ((float64(points) / float64(played)) / float64(gamesPerMatch)) * MaxSessionRating
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		rating = 0
	}
	rating = math.Max(0, math.Min(MaxSessionRating, rating))
	return math.Round(rating*1000) / 1000
}

// AppendRating adds r to history and keeps only the newest entries.
func AppendRating(history []float64, r float64) []float64 {
	out := append(slices.Clone(history), r)
	if len(out) > model.MaxRatingHistory {
		out = out[len(out)-model.MaxRatingHistory:]
	}
	return out
}

// Finalize returns updated copies of the selected players who played at
// least one finished game. Players who did not play are not returned.
func Finalize(schedule model.Schedule, selected []model.Player, gamesPerMatch int) []model.Player {
	t := tallyFinished(schedule)
	updated := make([]model.Player, 0, len(selected))
	for _, p := range selected {
		played := t.played[p.ID]
		if played < 1 {
			continue
		}
		p.Previous5Ratio = AppendRating(p.Previous5Ratio, SessionRating(t.points[p.ID], played, gamesPerMatch))
		updated = append(updated, p)
	}
	return updated
}
