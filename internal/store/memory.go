package store

import (
	"errors"
	"math/rand"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"shuffle-app/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]model.Player
	session *model.Session
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		players: make(map[string]model.Player),
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedData(s)
	}

	return s
}

func (s *MemoryStore) ListPlayers() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, clonePlayer(p))
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}

func (s *MemoryStore) GetPlayer(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	return clonePlayer(p), ok
}

func (s *MemoryStore) CreatePlayer(player model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	if _, exists := s.players[player.ID]; exists {
		return model.Player{}, ErrPlayerExists
	}
	s.players[player.ID] = clonePlayer(player)
	return player, nil
}

func (s *MemoryStore) UpdatePlayer(player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return ErrPlayerNotFound
	}
	s.players[player.ID] = clonePlayer(player)
	return nil
}

func (s *MemoryStore) GetSession() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return model.Session{}, false
	}
	return s.session.Clone(), true
}

func (s *MemoryStore) SaveSession(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveSessionLocked(session)
	return nil
}

func (s *MemoryStore) FinalizeSession(players []model.Player, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range players {
		if _, ok := s.players[p.ID]; !ok {
			return ErrPlayerNotFound
		}
	}
	for _, p := range players {
		s.players[p.ID] = clonePlayer(p)
	}
	s.saveSessionLocked(session)
	return nil
}

func (s *MemoryStore) saveSessionLocked(session model.Session) {
	if session.ID == "" {
		session.ID = CurrentSessionID
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now()
	}
	stored := session.Clone()
	s.session = &stored
}

func clonePlayer(p model.Player) model.Player {
	p.Previous5Ratio = slices.Clone(p.Previous5Ratio)
	return p
}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))

	seedPlayers := []struct {
		name   string
		gender model.Gender
		level  model.Level
	}{
		{"Krystian Lewandowski", model.GenderMale, model.LevelB},
		{"Paweł Góra", model.GenderMale, model.LevelA},
		{"Jacek Nowak", model.GenderMale, model.LevelB},
		{"Tomek Zieliński", model.GenderMale, model.LevelC},
		{"Władek Kowal", model.GenderMale, model.LevelA},
		{"Damian Lis", model.GenderMale, model.LevelB},
		{"Aneta Zalewska", model.GenderFemale, model.LevelB},
		{"Marek Król", model.GenderMale, model.LevelC},
		{"Kasia Wrona", model.GenderFemale, model.LevelA},
		{"Ola Chmiel", model.GenderFemale, model.LevelC},
		{"Piotr Maj", model.GenderMale, model.LevelB},
		{"Lena Jankowska", model.GenderFemale, model.LevelA},
		{"Bartek Nowicki", model.GenderMale, model.LevelB},
		{"Ewa Kania", model.GenderFemale, model.LevelB},
		{"Monika Woźniak", model.GenderFemale, model.LevelA},
		{"Natalia Kruk", model.GenderFemale, model.LevelC},
	}

	for _, sp := range seedPlayers {
		sessions := 1 + rng.Intn(model.MaxRatingHistory)
		history := make([]float64, 0, sessions)
		for i := 0; i < sessions; i++ {
			history = append(history, seedRating(rng, sp.level))
		}
		p := model.Player{
			ID:             uuid.NewString(),
			Name:           sp.name,
			Gender:         sp.gender,
			Level:          sp.level,
			Previous5Ratio: history,
		}
		s.players[p.ID] = p
	}
}

// seedRating draws a plausible past session rating around the level's
// baseline.
func seedRating(rng *rand.Rand, level model.Level) float64 {
	base := 2.5
	switch level {
	case model.LevelA:
		base = 1
	case model.LevelC:
		base = 4
	}
	r := base + rng.Float64() - 0.5
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	return float64(int(r*1000)) / 1000
}
