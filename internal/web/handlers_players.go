package web

import (
	"net/http"
	"strings"

	"shuffle-app/internal/session"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePlayersList(w http.ResponseWriter, r *http.Request) {
	players := s.session.ListPlayers()
	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		filtered := players[:0]
		for _, p := range players {
			if strings.Contains(strings.ToLower(p.Name), q) {
				filtered = append(filtered, p)
			}
		}
		players = filtered
	}
	writeJSON(w, http.StatusOK, newPlayerViews(players))
}

func (s *Server) handlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, badRequestf("invalid form"))
		return
	}
	player, notice, err := s.session.CreatePlayer(session.PlayerInput{
		Name:   r.FormValue("name"),
		Gender: parseGender(r.FormValue("gender")),
		Level:  parseLevel(r.FormValue("level")),
		Select: parseBool(r.FormValue("select")),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, PlayerCreatedView{
		Player: newPlayerView(player),
		Notice: notice,
	})
}

func (s *Server) handlePlayerEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, badRequestf("invalid form"))
		return
	}
	player, err := s.session.EditPlayer(chi.URLParam(r, "playerID"), r.FormValue("name"), parseGender(r.FormValue("gender")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlayerView(player))
}

func (s *Server) handleSelectedReplace(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, badRequestf("invalid form"))
		return
	}
	ids := make([]string, 0, len(r.Form["player_id"]))
	for _, id := range r.Form["player_id"] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	view, err := s.session.SetSelected(ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSelectedAdd(w http.ResponseWriter, r *http.Request) {
	view, err := s.session.SelectPlayer(chi.URLParam(r, "playerID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSelectedRemove(w http.ResponseWriter, r *http.Request) {
	view, err := s.session.RemovePlayer(chi.URLParam(r, "playerID"), parseDecision(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubstitute(w http.ResponseWriter, r *http.Request) {
	oldID := strings.TrimSpace(r.FormValue("old_player_id"))
	newID := strings.TrimSpace(r.FormValue("new_player_id"))
	if oldID == "" || newID == "" {
		s.writeError(w, r, badRequestf("old_player_id and new_player_id are required"))
		return
	}
	view, err := s.session.SubstitutePlayer(oldID, newID, parseDecision(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
