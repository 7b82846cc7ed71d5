package session

import (
	"fmt"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/model"
)

// ToggleGame moves a game between awaiting and in play. A finished game is
// reopened and loses its score.
func (s *Service) ToggleGame(gameID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	game, ref, err := s.findGame(session, gameID)
	if err != nil {
		return View{}, err
	}
	from := game.Status
	engine.Toggle(game)
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("game toggled",
		"session_id", session.ID,
		"round", ref.RoundNumber,
		"game_id", gameID,
		"from", from,
		"to", game.Status,
	)
	return s.view(session, s.roster(), nil)
}

func (s *Service) SetScore(gameID string, scoreA int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	game, ref, err := s.findGame(session, gameID)
	if err != nil {
		return View{}, err
	}
	if err := engine.SetScore(game, scoreA, session.GamesPerMatch); err != nil {
		s.rejected("set score", err)
		return View{}, err
	}
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("score recorded",
		"session_id", session.ID,
		"round", ref.RoundNumber,
		"game_id", gameID,
		"score_a", game.ScoreA,
		"score_b", game.ScoreB,
	)
	return s.view(session, s.roster(), nil)
}

type SwapResult struct {
	Outcome engine.SwapOutcome `json:"outcome"`
	View    View               `json:"view"`
}

// SelectSwap is one click of the two-click swap. The first click only
// records the slot; the second one swaps, clears, or is rejected, and in
// every case forgets the first.
func (s *Service) SelectSwap(loc engine.Location) (SwapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	roster := s.roster()
	outcome, err := s.swapper.Select(session.Games, roster, loc)
	if err != nil {
		s.rejected("swap", err)
		return SwapResult{}, err
	}
	if outcome == engine.SwapApplied {
		if err := s.save(session); err != nil {
			return SwapResult{}, err
		}
		s.logger.Info("players swapped", "session_id", session.ID, "round", loc.Round+1, "target", loc.String())
	}
	v, err := s.view(session, roster, nil)
	if err != nil {
		return SwapResult{}, err
	}
	return SwapResult{Outcome: outcome, View: v}, nil
}

func (s *Service) CancelSwap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.swapper.Cancel()
}

func (s *Service) Conflicts() engine.ConflictReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return engine.DetectConflicts(s.load().Games)
}

func (s *Service) ActivePlayers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return engine.ActivePlayers(s.load().Games).IDs()
}

func (s *Service) InPlay() []engine.GameRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	return engine.InPlayGames(s.load().Games)
}

// Queue lists the awaiting games that can go on court now.
func (s *Service) Queue() []engine.GameRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	return engine.QueuedGames(s.load().Games)
}

func (s *Service) Standings() ([]engine.StandingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	players, err := s.roster().Resolve(session.Selected)
	if err != nil {
		return nil, err
	}
	return engine.BuildStandings(session.Games, players, s.locale), nil
}

type FinalizeResult struct {
	Updated []model.Player `json:"updated"`
	View    View           `json:"view"`
}

// Finalize appends this session's rating to everyone who finished a game,
// then clears the selection and the schedule. Ratings and the cleared
// session are stored together.
func (s *Service) Finalize(d Decision) (FinalizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireConfirmation(d, promptFinalize.Title, promptFinalize.Message); err != nil {
		return FinalizeResult{}, err
	}
	session := s.load()
	roster := s.roster()
	players, err := roster.Resolve(session.Selected)
	if err != nil {
		return FinalizeResult{}, err
	}
	updated := engine.Finalize(session.Games, players, session.GamesPerMatch)

	closed := session
	closed.Selected = []string{}
	closed.Games = nil
	closed.UpdatedAt = s.clock()
	if err := s.store.FinalizeSession(updated, closed); err != nil {
		s.logger.Error("finalize session failed", "session_id", session.ID, "err", err)
		return FinalizeResult{}, fmt.Errorf("finalize session: %w", err)
	}
	s.swapper.Cancel()
	for _, p := range updated {
		roster[p.ID] = p
	}
	s.logger.Info("session finalized", "session_id", session.ID, "rated_players", len(updated))

	v, err := s.view(closed, roster, nil)
	if err != nil {
		return FinalizeResult{}, err
	}
	return FinalizeResult{Updated: updated, View: v}, nil
}

func (s *Service) findGame(session model.Session, gameID string) (*model.Game, engine.GameRef, error) {
	ref, err := engine.FindGame(session.Games, gameID)
	if err != nil {
		return nil, engine.GameRef{}, err
	}
	return &session.Games[ref.RoundIndex].Games[ref.GameIndex], ref, nil
}
