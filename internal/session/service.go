package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/model"
	"shuffle-app/internal/store"

	"golang.org/x/text/language"
)

// Service owns the live session. Every mutation runs under one mutex, works
// on a copy of the stored session and is saved whole, so callers never see
// a half-applied change.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	logger  *slog.Logger
	locale  language.Tag
	clock   func() time.Time
	swapper engine.Swapper
}

func NewService(st store.Store, logger *slog.Logger, locale language.Tag) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		logger: logger,
		locale: locale,
		clock:  time.Now,
	}
}

// View is the session as the organizer sees it, with everything derived
// from the schedule already computed.
type View struct {
	Session          model.Session         `json:"session"`
	Players          []model.Player        `json:"players"`
	Conflicts        engine.ConflictReport `json:"conflicts"`
	ActivePlayerIDs  []string              `json:"activePlayerIds"`
	HasFinishedGames bool                  `json:"hasFinishedGames"`
	PendingSwap      *engine.Location      `json:"pendingSwap,omitempty"`
	Notice           *Prompt               `json:"notice,omitempty"`
}

func (s *Service) Current() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view(s.load(), s.roster(), nil)
}

// Generate builds a fresh schedule from the selected players. Validation
// runs before the confirmation check, so a cancelled regenerate still
// reports why it could not run.
func (s *Service) Generate(numRounds, gamesPerMatch int, d Decision) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	roster := s.roster()
	players, err := roster.Resolve(session.Selected)
	if err != nil {
		return View{}, err
	}
	if err := engine.ValidateRoster(len(players), numRounds); err != nil {
		s.rejected("generate", err)
		return View{}, err
	}
	if err := engine.ValidateConfig(numRounds, gamesPerMatch); err != nil {
		s.rejected("generate", err)
		return View{}, err
	}
	if session.HasSchedule() {
		if err := requireConfirmation(d, promptRegenerate.Title, promptRegenerate.Message); err != nil {
			return View{}, err
		}
	}

	schedule, err := engine.Generate(players, numRounds, gamesPerMatch)
	if err != nil {
		s.rejected("generate", err)
		return View{}, err
	}
	session.Games = schedule
	session.NumOfRounds = numRounds
	session.GamesPerMatch = gamesPerMatch
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.swapper.Cancel()

	v, err := s.view(session, roster, nil)
	if err != nil {
		return View{}, err
	}
	s.logger.Info("schedule generated",
		"session_id", session.ID,
		"players", len(players),
		"rounds", numRounds,
		"games_per_match", gamesPerMatch,
		"conflicts", len(v.Conflicts.Pairs),
	)
	return v, nil
}

func (s *Service) Reset(d Decision) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireConfirmation(d, promptReset.Title, promptReset.Message); err != nil {
		return View{}, err
	}
	session := s.load()
	session.Games = nil
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.swapper.Cancel()
	s.logger.Info("schedule reset", "session_id", session.ID)
	return s.view(session, s.roster(), nil)
}

// load returns the stored session or a fresh one with default settings.
func (s *Service) load() model.Session {
	session, ok := s.store.GetSession()
	if !ok {
		return model.Session{
			ID:            store.CurrentSessionID,
			GamesPerMatch: engine.DefaultGamesPerMatch,
			NumOfRounds:   engine.DefaultNumRounds,
			Selected:      []string{},
		}
	}
	if session.GamesPerMatch == 0 {
		session.GamesPerMatch = engine.DefaultGamesPerMatch
	}
	if session.NumOfRounds == 0 {
		session.NumOfRounds = engine.DefaultNumRounds
	}
	return session.Clone()
}

func (s *Service) save(session model.Session) error {
	session.UpdatedAt = s.clock()
	if err := s.store.SaveSession(session); err != nil {
		s.logger.Error("save session failed", "session_id", session.ID, "err", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Service) roster() engine.Roster {
	return engine.NewRoster(s.store.ListPlayers())
}

func (s *Service) view(session model.Session, roster engine.Roster, notice *Prompt) (View, error) {
	players, err := roster.Resolve(session.Selected)
	if err != nil {
		return View{}, err
	}
	v := View{
		Session:          session,
		Players:          players,
		Conflicts:        engine.DetectConflicts(session.Games),
		ActivePlayerIDs:  engine.ActivePlayers(session.Games).IDs(),
		HasFinishedGames: engine.HasFinishedGames(session.Games),
		Notice:           notice,
	}
	if loc, ok := s.swapper.Pending(); ok {
		v.PendingSwap = &loc
	}
	return v, nil
}

// rejected logs a refused operation. Domain rejections are expected and
// logged at Warn; anything else is an Error.
func (s *Service) rejected(op string, err error) {
	var validation *engine.ValidationError
	var invalid *engine.InvalidOperationError
	switch {
	case errors.As(err, &validation), errors.As(err, &invalid), errors.Is(err, engine.ErrNotFound):
		s.logger.Warn("operation rejected", "op", op, "err", err)
	default:
		s.logger.Error("operation failed", "op", op, "err", err)
	}
}
