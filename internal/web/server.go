package web

import (
	"log/slog"
	"net/http"

	"shuffle-app/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	session *session.Service
	logger  *slog.Logger
	pinHash string
}

type Options struct {
	// OrganizerPINHash is a bcrypt hash. Mutating routes are open when it
	// is empty.
	OrganizerPINHash string
}

func NewServer(svc *session.Service, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{session: svc, logger: logger, pinHash: opts.OrganizerPINHash}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/players", s.handlePlayersList)
	r.Get("/session", s.handleSessionShow)
	r.Get("/session/conflicts", s.handleConflicts)
	r.Get("/session/active", s.handleActive)
	r.Get("/session/queue", s.handleQueue)
	r.Get("/session/standings", s.handleStandings)

	r.Group(func(r chi.Router) {
		r.Use(RequireOrganizer(s.pinHash))

		r.Post("/players", s.handlePlayerCreate)
		r.Patch("/players/{playerID}", s.handlePlayerEdit)

		r.Put("/session/selected", s.handleSelectedReplace)
		r.Post("/session/selected/{playerID}", s.handleSelectedAdd)
		r.Delete("/session/selected/{playerID}", s.handleSelectedRemove)
		r.Post("/session/substitute", s.handleSubstitute)

		r.Post("/session/schedule", s.handleScheduleGenerate)
		r.Delete("/session/schedule", s.handleScheduleReset)

		r.Post("/session/games/{gameID}/toggle", s.handleGameToggle)
		r.Post("/session/games/{gameID}/score", s.handleGameScore)

		r.Post("/session/swap/select", s.handleSwapSelect)
		r.Delete("/session/swap/select", s.handleSwapCancel)

		r.Post("/session/finalize", s.handleFinalize)
	})

	return r
}
