package store

import (
	"errors"

	"shuffle-app/internal/model"
)

// CurrentSessionID keys the single live session a club night runs on.
const CurrentSessionID = "current"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
)

type Store interface {
	ListPlayers() []model.Player
	GetPlayer(id string) (model.Player, bool)
	CreatePlayer(player model.Player) (model.Player, error)
	UpdatePlayer(player model.Player) error

	GetSession() (model.Session, bool)
	SaveSession(session model.Session) error
	// FinalizeSession stores the players' new rating history and the
	// closed session together, or neither.
	FinalizeSession(players []model.Player, session model.Session) error
}
