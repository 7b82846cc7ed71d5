package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSessionShow(w http.ResponseWriter, r *http.Request) {
	view, err := s.session.Current()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleScheduleGenerate(w http.ResponseWriter, r *http.Request) {
	numRounds, err := parseNumRounds(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	gamesPerMatch, err := parseGamesPerMatch(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.session.Generate(numRounds, gamesPerMatch, parseDecision(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleScheduleReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.session.Reset(parseDecision(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGameToggle(w http.ResponseWriter, r *http.Request) {
	view, err := s.session.ToggleGame(chi.URLParam(r, "gameID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGameScore(w http.ResponseWriter, r *http.Request) {
	scoreA, err := parseScoreA(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.session.SetScore(chi.URLParam(r, "gameID"), scoreA)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSwapSelect(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.session.SelectSwap(loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSwapCancel(w http.ResponseWriter, r *http.Request) {
	s.session.CancelSwap()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	report := s.session.Conflicts()
	writeJSON(w, http.StatusOK, ConflictsView{ConflictReport: report, HasConflicts: report.HasConflicts()})
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ActiveView{
		PlayerIDs: s.session.ActivePlayers(),
		Games:     s.session.InPlay(),
	})
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GamesView{Games: s.session.Queue()})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	entries, err := s.session.Standings()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rankStandings(entries))
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	result, err := s.session.Finalize(parseDecision(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
