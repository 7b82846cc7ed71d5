package session

import (
	"fmt"
	"slices"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/model"
)

type PlayerInput struct {
	Name   string       `json:"name"`
	Gender model.Gender `json:"gender"`
	Level  model.Level  `json:"level"`
	// Select also adds the new player to the front of the selection.
	Select bool `json:"select"`
}

func (s *Service) ListPlayers() []model.Player {
	return s.store.ListPlayers()
}

// CreatePlayer saves a new player with a history seeded from their level.
// The returned notice is set when the player was selected after a schedule
// had already been generated.
func (s *Service) CreatePlayer(in PlayerInput) (model.Player, *Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := engine.NewPlayer(in.Name, in.Gender, in.Level)
	if err != nil {
		s.rejected("create player", err)
		return model.Player{}, nil, err
	}
	created, err := s.store.CreatePlayer(p)
	if err != nil {
		s.logger.Error("create player failed", "name", p.Name, "err", err)
		return model.Player{}, nil, fmt.Errorf("create player: %w", err)
	}
	p = created
	s.logger.Info("player created", "player_id", p.ID, "level", p.Level)
	if !in.Select {
		return p, nil, nil
	}
	session := s.load()
	notice := s.addToSelection(&session, p.ID)
	if err := s.save(session); err != nil {
		return model.Player{}, nil, err
	}
	return p, notice, nil
}

func (s *Service) EditPlayer(id, name string, gender model.Gender) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.GetPlayer(id)
	if !ok {
		return model.Player{}, fmt.Errorf("player %s: %w", id, engine.ErrNotFound)
	}
	edited, err := engine.EditPlayer(p, name, gender)
	if err != nil {
		s.rejected("edit player", err)
		return model.Player{}, err
	}
	if err := s.store.UpdatePlayer(edited); err != nil {
		s.logger.Error("update player failed", "player_id", id, "err", err)
		return model.Player{}, fmt.Errorf("update player: %w", err)
	}
	s.logger.Info("player edited", "player_id", id)
	return edited, nil
}

// SelectPlayer puts an existing player at the front of the selection.
// Selecting someone already selected changes nothing.
func (s *Service) SelectPlayer(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.roster()
	if _, ok := roster[id]; !ok {
		return View{}, fmt.Errorf("player %s: %w", id, engine.ErrNotFound)
	}
	session := s.load()
	if session.IsSelected(id) {
		return s.view(session, roster, nil)
	}
	notice := s.addToSelection(&session, id)
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("player selected", "session_id", session.ID, "player_id", id)
	return s.view(session, roster, notice)
}

// SetSelected replaces the whole selection. Duplicates are dropped. A
// selected player who is already in the schedule cannot be left out, and
// neither can anyone still holding a slot in an unfinished game.
func (s *Service) SetSelected(ids []string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.roster()
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(selected, id) {
			continue
		}
		if _, ok := roster[id]; !ok {
			return View{}, fmt.Errorf("player %s: %w", id, engine.ErrNotFound)
		}
		selected = append(selected, id)
	}
	session := s.load()
	for _, id := range lockedIn(session) {
		if !slices.Contains(selected, id) {
			err := playerActive()
			s.rejected("set selection", err)
			return View{}, err
		}
	}
	var notice *Prompt
	if session.HasSchedule() {
		for _, id := range selected {
			if !session.IsSelected(id) {
				notice = lateAdditionNotice()
				break
			}
		}
	}
	session.Selected = selected
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("selection replaced", "session_id", session.ID, "players", len(selected))
	return s.view(session, roster, notice)
}

// RemovePlayer drops a player from the selection. Players that appear
// anywhere in the schedule must be substituted or the schedule reset first.
func (s *Service) RemovePlayer(id string, d Decision) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	if !session.IsSelected(id) {
		return View{}, fmt.Errorf("player %s is not selected: %w", id, engine.ErrNotFound)
	}
	if engine.ScheduledPlayers(session.Games).Has(id) {
		err := playerActive()
		s.rejected("remove player", err)
		return View{}, err
	}
	if err := requireConfirmation(d, promptRemove.Title, promptRemove.Message); err != nil {
		return View{}, err
	}
	session.Selected = slices.DeleteFunc(session.Selected, func(sel string) bool { return sel == id })
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("player removed", "session_id", session.ID, "player_id", id)
	return s.view(session, s.roster(), nil)
}

// SubstitutePlayer swaps a selected player for one who is neither selected
// nor anywhere in the schedule. The newcomer takes the same place in the selection and every slot the old
// player holds in games that are not finished.
func (s *Service) SubstitutePlayer(oldID, newID string, d Decision) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.roster()
	session := s.load()
	idx := slices.Index(session.Selected, oldID)
	if idx < 0 {
		return View{}, fmt.Errorf("player %s is not selected: %w", oldID, engine.ErrNotFound)
	}
	incoming, ok := roster[newID]
	if !ok {
		return View{}, fmt.Errorf("player %s: %w", newID, engine.ErrNotFound)
	}
	var reason string
	switch {
	case session.IsSelected(newID):
		reason = fmt.Sprintf("%s is already selected.", incoming.Name)
	case engine.ScheduledPlayers(session.Games).Has(newID):
		reason = fmt.Sprintf("%s already appears in the schedule.", incoming.Name)
	}
	if reason != "" {
		err := &engine.InvalidOperationError{Title: "Invalid Substitution", Message: reason}
		s.rejected("substitute player", err)
		return View{}, err
	}
	outgoing := roster[oldID]
	if err := requireConfirmation(d, "Confirm Replacement",
		fmt.Sprintf("Replace %s with %s?", outgoing.Name, incoming.Name)); err != nil {
		return View{}, err
	}

	session.Selected[idx] = newID
	slots := engine.Substitute(session.Games, roster, oldID, newID)
	if err := s.save(session); err != nil {
		return View{}, err
	}
	s.logger.Info("player substituted",
		"session_id", session.ID,
		"old_player_id", oldID,
		"new_player_id", newID,
		"slots", slots,
	)
	return s.view(session, roster, nil)
}

// lockedIn lists the players a new selection has to keep.
func lockedIn(session model.Session) []string {
	locked := engine.PendingPlayers(session.Games)
	for id := range engine.ScheduledPlayers(session.Games) {
		if session.IsSelected(id) {
			locked[id] = struct{}{}
		}
	}
	return locked.IDs()
}

func (s *Service) addToSelection(session *model.Session, id string) *Prompt {
	session.Selected = append([]string{id}, session.Selected...)
	if session.HasSchedule() {
		return lateAdditionNotice()
	}
	return nil
}

func lateAdditionNotice() *Prompt {
	n := noticeLateAddition
	return &n
}

func playerActive() error {
	return &engine.InvalidOperationError{
		Title:   "Player is active",
		Message: "Player is already in the schedule. It cannot be removed. Substitute the player or reset the matches.",
	}
}
