package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"shuffle-app/internal/engine"
	"shuffle-app/internal/session"
	"shuffle-app/internal/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	pin     string
}

func newTestServer(t *testing.T, pinHash string) *testServer {
	t.Helper()
	t.Setenv("APP", "prod")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := session.NewService(store.NewMemoryStore(), logger, language.English)
	srv := NewServer(svc, logger, Options{OrganizerPINHash: pinHash})
	return &testServer{t: t, handler: srv.Routes()}
}

func (ts *testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	ts.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ts.pin != "" {
		req.Header.Set(organizerPINHeader, ts.pin)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) createPlayers(n int) []string {
	ts.t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		gender := "male"
		if i%2 == 1 {
			gender = "female"
		}
		rec := ts.do(http.MethodPost, "/players", url.Values{
			"name":   {fmt.Sprintf("Player %02d", i)},
			"gender": {gender},
			"level":  {[]string{"a", "b", "c"}[i%3]},
			"select": {"true"},
		})
		require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode[PlayerCreatedView](ts.t, rec)
		ids = append(ids, created.Player.ID)
	}
	return ids
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, "")
	rec := ts.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPlayersEndpoints(t *testing.T) {
	ts := newTestServer(t, "")
	ids := ts.createPlayers(2)

	rec := ts.do(http.MethodGet, "/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	players := decode[[]PlayerView](t, rec)
	require.Len(t, players, 2)
	require.InDelta(t, 5.0, players[0].Score, 1e-9, "level A seeds five 1.0 ratings")

	rec = ts.do(http.MethodGet, "/players?q=01", nil)
	require.Len(t, decode[[]PlayerView](t, rec), 1)

	rec = ts.do(http.MethodPatch, "/players/"+ids[0], url.Values{"name": {"Renamed"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Renamed", decode[PlayerView](t, rec).Name)

	rec = ts.do(http.MethodPatch, "/players/"+ids[0], url.Values{"name": {" "}})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Name cannot be empty", decode[errorView](t, rec).Message)

	rec = ts.do(http.MethodPatch, "/players/ghost", url.Values{"name": {"x"}})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateEndpoint(t *testing.T) {
	ts := newTestServer(t, "")
	ts.createPlayers(11)

	rec := ts.do(http.MethodPost, "/session/schedule", url.Values{"num_rounds": {"3"}, "games_per_match": {"7"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "For 3 Rounds, you need at least 12 players.", decode[errorView](t, rec).Message)

	ts.createPlayers(1)
	rec = ts.do(http.MethodPost, "/session/schedule", url.Values{"num_rounds": {"3"}, "games_per_match": {"7"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[session.View](t, rec)
	require.Len(t, view.Session.Games, 3)
	require.Len(t, view.Session.Games[0].Games, 3)

	rec = ts.do(http.MethodPost, "/session/schedule", url.Values{})
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	prompt := decode[errorView](t, rec)
	require.True(t, prompt.Confirm)
	require.Equal(t, "Regenerate Schedule", prompt.Title)

	rec = ts.do(http.MethodPost, "/session/schedule", url.Values{"confirm": {"true"}, "num_rounds": {"x"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/session/schedule", nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = ts.do(http.MethodDelete, "/session/schedule?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[session.View](t, rec).Session.Games)
}

func TestGameAndStandingsEndpoints(t *testing.T) {
	ts := newTestServer(t, "")
	ts.createPlayers(12)
	rec := ts.do(http.MethodPost, "/session/schedule", url.Values{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[session.View](t, rec)
	game := view.Session.Games[0].Games[0]

	rec = ts.do(http.MethodPost, "/session/games/"+game.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/session/active", nil)
	active := decode[ActiveView](t, rec)
	require.Len(t, active.PlayerIDs, 4)
	require.Len(t, active.Games, 1)

	rec = ts.do(http.MethodGet, "/session/queue", nil)
	for _, ref := range decode[GamesView](t, rec).Games {
		require.NotEqual(t, game.ID, ref.Game.ID)
	}

	rec = ts.do(http.MethodPost, "/session/games/"+game.ID+"/score", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/session/games/"+game.ID+"/score", url.Values{"score_a": {"4"}})
	require.Equal(t, http.StatusOK, rec.Code)
	scored := decode[session.View](t, rec)
	require.Equal(t, 3, scored.Session.Games[0].Games[0].ScoreB)
	require.True(t, scored.HasFinishedGames)

	rec = ts.do(http.MethodPost, "/session/games/"+game.ID+"/score", url.Values{"score_a": {"2"}})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/session/games/nope/toggle", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/session/standings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]StandingRow](t, rec)
	require.Len(t, rows, 12)
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, 1, rows[1].Rank)
	require.Equal(t, 3, rows[2].Rank)
	require.Equal(t, 4, rows[0].Points)

	rec = ts.do(http.MethodPost, "/session/finalize", nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = ts.do(http.MethodPost, "/session/finalize?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	final := decode[session.FinalizeResult](t, rec)
	require.Len(t, final.Updated, 4)
	require.Empty(t, final.View.Session.Selected)
}

func TestSwapEndpoints(t *testing.T) {
	ts := newTestServer(t, "")
	ts.createPlayers(12)
	rec := ts.do(http.MethodPost, "/session/schedule", url.Values{})
	require.Equal(t, http.StatusCreated, rec.Code)

	first := url.Values{"round": {"0"}, "game": {"0"}, "side": {"a"}, "slot": {"1"}}
	rec = ts.do(http.MethodPost, "/session/swap/select", first)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, engine.SwapPending, decode[session.SwapResult](t, rec).Outcome)

	rec = ts.do(http.MethodPost, "/session/swap/select", url.Values{"round": {"1"}, "game": {"0"}, "side": {"B"}, "slot": {"1"}})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Invalid Swap", decode[errorView](t, rec).Title)

	rec = ts.do(http.MethodPost, "/session/swap/select", first)
	require.Equal(t, engine.SwapPending, decode[session.SwapResult](t, rec).Outcome)
	rec = ts.do(http.MethodDelete, "/session/swap/select", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodPost, "/session/swap/select", url.Values{"round": {"0"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/session/swap/select", first)
	require.Equal(t, engine.SwapPending, decode[session.SwapResult](t, rec).Outcome)
	rec = ts.do(http.MethodPost, "/session/swap/select", url.Values{"round": {"0"}, "game": {"2"}, "side": {"B"}, "slot": {"2"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, engine.SwapApplied, decode[session.SwapResult](t, rec).Outcome)

	rec = ts.do(http.MethodGet, "/session/conflicts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	conflicts := decode[ConflictsView](t, rec)
	require.Equal(t, conflicts.HasConflicts, len(conflicts.Pairs) > 0)
}

func TestSelectionEndpoints(t *testing.T) {
	ts := newTestServer(t, "")
	ids := ts.createPlayers(2)

	rec := ts.do(http.MethodPut, "/session/selected", url.Values{"player_id": {ids[0]}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{ids[0]}, decode[session.View](t, rec).Session.Selected)

	rec = ts.do(http.MethodPost, "/session/selected/"+ids[1], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{ids[1], ids[0]}, decode[session.View](t, rec).Session.Selected)

	rec = ts.do(http.MethodDelete, "/session/selected/"+ids[1], nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = ts.do(http.MethodDelete, "/session/selected/"+ids[1]+"?confirm=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{ids[0]}, decode[session.View](t, rec).Session.Selected)

	rec = ts.do(http.MethodPost, "/session/substitute", url.Values{"old_player_id": {ids[0]}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(http.MethodPost, "/session/substitute", url.Values{
		"old_player_id": {ids[0]},
		"new_player_id": {ids[1]},
		"confirm":       {"true"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{ids[1]}, decode[session.View](t, rec).Session.Selected)
}

func TestOrganizerPIN(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("2468"), bcrypt.MinCost)
	require.NoError(t, err)
	ts := newTestServer(t, string(hash))

	rec := ts.do(http.MethodPost, "/players", url.Values{"name": {"Ola"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.pin = "1357"
	rec = ts.do(http.MethodPost, "/players", url.Values{"name": {"Ola"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.pin = "2468"
	rec = ts.do(http.MethodPost, "/players", url.Values{"name": {"Ola"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	ts.pin = ""
	rec = ts.do(http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, rec.Code, "reads stay open")
}

func TestHashPIN(t *testing.T) {
	hash, err := HashPIN(" 1234 ")
	require.NoError(t, err)
	require.True(t, checkPIN(hash, "1234"))
	require.False(t, checkPIN(hash, "4321"))
	require.False(t, checkPIN("", "1234"))
}
