package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		confirm    *session.ConfirmationError
		validation *engine.ValidationError
		invalid    *engine.InvalidOperationError
	)
	switch {
	case errors.As(err, &confirm):
		writeJSON(w, http.StatusPreconditionRequired, errorView{
			Title:   confirm.Prompt.Title,
			Message: confirm.Prompt.Message,
			Confirm: true,
		})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, errorView{Title: "Validation", Message: validation.Message})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusConflict, errorView{Title: invalid.Title, Message: invalid.Message})
	case errors.Is(err, engine.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorView{Message: err.Error()})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorView{Message: strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorView{Message: "internal error"})
	}
}
