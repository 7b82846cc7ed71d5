package model

import (
	"strings"
	"time"
)

type Gender string
type Level string

type GameType string
type GameStatus string

type Side string
type Slot int

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"

	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"

	GameDoubles GameType = "doubles"
	GameSingles GameType = "singles"

	StatusAwaiting GameStatus = "awaiting"
	StatusInPlay   GameStatus = "in_play"
	StatusFinished GameStatus = "finished"

	SideA Side = "A"
	SideB Side = "B"

	Slot1 Slot = 1
	Slot2 Slot = 2
)

// MaxRatingHistory is the number of past session ratings a player keeps.
const MaxRatingHistory = 5

type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Gender         Gender    `json:"gender,omitempty"`
	Level          Level     `json:"level,omitempty"`
	Previous5Ratio []float64 `json:"previous5ratio"`
}

// EffectiveGender treats a missing gender as male.
func (p Player) EffectiveGender() Gender {
	if strings.TrimSpace(string(p.Gender)) == "" {
		return GenderMale
	}
	return p.Gender
}

// Pair references players by id. An empty P2 marks a half-pair in a singles game.
type Pair struct {
	P1       string  `json:"p1"`
	P2       string  `json:"p2,omitempty"`
	Strength float64 `json:"strength"`
}

func (p Pair) IsHalf() bool {
	return p.P2 == ""
}

func (p Pair) Members() []string {
	if p.P2 == "" {
		return []string{p.P1}
	}
	return []string{p.P1, p.P2}
}

func (p Pair) Player(slot Slot) string {
	if slot == Slot2 {
		return p.P2
	}
	return p.P1
}

func (p *Pair) SetPlayer(slot Slot, id string) {
	if slot == Slot2 {
		p.P2 = id
		return
	}
	p.P1 = id
}

type Game struct {
	ID     string     `json:"id"`
	Type   GameType   `json:"type"`
	PairA  Pair       `json:"pairA"`
	PairB  Pair       `json:"pairB"`
	Status GameStatus `json:"status"`
	ScoreA int        `json:"scoreA"`
	ScoreB int        `json:"scoreB"`
}

func (g *Game) Pair(side Side) *Pair {
	if side == SideB {
		return &g.PairB
	}
	return &g.PairA
}

func (g Game) PlayerIDs() []string {
	ids := make([]string, 0, 4)
	ids = append(ids, g.PairA.Members()...)
	return append(ids, g.PairB.Members()...)
}

func (g Game) Involves(playerID string) bool {
	for _, id := range g.PlayerIDs() {
		if id == playerID {
			return true
		}
	}
	return false
}

type Round struct {
	RoundNumber int      `json:"roundNumber"`
	Games       []Game   `json:"games"`
	SitOuts     []string `json:"sitOuts"`
}

type Schedule []Round

// Clone returns a deep copy so callers can mutate without touching the original.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for i, r := range s {
		out[i] = Round{
			RoundNumber: r.RoundNumber,
			Games:       append([]Game(nil), r.Games...),
			SitOuts:     append([]string{}, r.SitOuts...),
		}
	}
	return out
}

type Session struct {
	ID            string    `json:"id"`
	GamesPerMatch int       `json:"gamesPerMatch"`
	NumOfRounds   int       `json:"numOfRounds"`
	Selected      []string  `json:"selected"`
	Games         Schedule  `json:"games"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s Session) HasSchedule() bool {
	return len(s.Games) > 0
}

func (s Session) IsSelected(playerID string) bool {
	for _, id := range s.Selected {
		if id == playerID {
			return true
		}
	}
	return false
}

// Clone deep-copies the selection and schedule.
func (s Session) Clone() Session {
	out := s
	out.Selected = append([]string{}, s.Selected...)
	out.Games = s.Games.Clone()
	return out
}
