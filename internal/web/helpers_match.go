package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/model"
	"shuffle-app/internal/session"
)

var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// parseIntField reads an integer form or query value, falling back to def
// when it is absent.
func parseIntField(r *http.Request, name string, def int) (int, error) {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, badRequestf("%s must be a whole number", name)
	}
	return parsed, nil
}

func parseGamesPerMatch(r *http.Request) (int, error) {
	return parseIntField(r, "games_per_match", engine.DefaultGamesPerMatch)
}

func parseNumRounds(r *http.Request) (int, error) {
	return parseIntField(r, "num_rounds", engine.DefaultNumRounds)
}

func parseScoreA(r *http.Request) (int, error) {
	if strings.TrimSpace(r.FormValue("score_a")) == "" {
		return 0, badRequestf("score_a is required")
	}
	return parseIntField(r, "score_a", 0)
}

// parseLocation reads a player slot. round and game are zero-based.
func parseLocation(r *http.Request) (engine.Location, error) {
	var loc engine.Location
	for _, name := range []string{"round", "game", "side", "slot"} {
		if strings.TrimSpace(r.FormValue(name)) == "" {
			return loc, badRequestf("%s is required", name)
		}
	}
	var err error
	if loc.Round, err = parseIntField(r, "round", 0); err != nil {
		return loc, err
	}
	if loc.Game, err = parseIntField(r, "game", 0); err != nil {
		return loc, err
	}
	slot, err := parseIntField(r, "slot", 0)
	if err != nil {
		return loc, err
	}
	loc.Slot = model.Slot(slot)
	loc.Side = model.Side(strings.ToUpper(strings.TrimSpace(r.FormValue("side"))))
	return loc, nil
}

func parseDecision(r *http.Request) session.Decision {
	confirmed, err := strconv.ParseBool(strings.TrimSpace(r.FormValue("confirm")))
	if err != nil || !confirmed {
		return session.Cancelled
	}
	return session.Confirmed
}

func parseGender(value string) model.Gender {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "female", "f":
		return model.GenderFemale
	case "male", "m":
		return model.GenderMale
	}
	return ""
}

func parseLevel(value string) model.Level {
	return model.Level(strings.ToUpper(strings.TrimSpace(value)))
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}
