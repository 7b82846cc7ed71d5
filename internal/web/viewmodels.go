package web

import (
	"shuffle-app/internal/engine"
	"shuffle-app/internal/model"
	"shuffle-app/internal/session"
)

type errorView struct {
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
	// Confirm is set when repeating the request with confirm=true would
	// perform it.
	Confirm bool `json:"confirm,omitempty"`
}

type PlayerView struct {
	model.Player
	Score float64 `json:"score"`
}

func newPlayerView(p model.Player) PlayerView {
	return PlayerView{Player: p, Score: engine.Score(p)}
}

func newPlayerViews(players []model.Player) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, newPlayerView(p))
	}
	return views
}

type PlayerCreatedView struct {
	Player PlayerView      `json:"player"`
	Notice *session.Prompt `json:"notice,omitempty"`
}

type ConflictsView struct {
	engine.ConflictReport
	HasConflicts bool `json:"hasConflicts"`
}

type GamesView struct {
	Games []engine.GameRef `json:"games"`
}

type ActiveView struct {
	PlayerIDs []string         `json:"playerIds"`
	Games     []engine.GameRef `json:"games"`
}
