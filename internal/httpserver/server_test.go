package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/database"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dict, err := words.FromList([]string{"crane", "crate", "trace", "slate", "caret"}, 5)
	require.NoError(t, err)

	cfg := config.Config{
		Server: config.ServerConfig{ClientOrigin: "http://localhost:5173"},
		Auth: config.AuthConfig{
			JWTSecret:      "test_secret",
			JWTExpiresDays: 1,
			CookieName:     "solver_token",
		},
	}
	return New(cfg, dict, store.NewMemoryStore(), db)
}

func do(t *testing.T, s *Server, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthAndCORS(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, s, http.MethodOptions, "/sessions", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeBody[map[string]string](t, rec)["error"])
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[sessionRes](t, rec)
	require.NotEmpty(t, created.SessionID)
	require.Equal(t, 5, created.WordLength)
	require.Equal(t, 5, created.Count)
	base := "/sessions/" + created.SessionID

	rec = do(t, s, http.MethodPost, base+"/solve", `{"confirmedLetters":"cr___"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[candidatesRes](t, rec)
	require.Equal(t, []string{"crane", "crate"}, res.Candidates)
	require.False(t, res.Solved)

	rec = do(t, s, http.MethodPost, base+"/solve", `{"absentLetters":"n"}`)
	res = decodeBody[candidatesRes](t, rec)
	require.Equal(t, []string{"crate"}, res.Candidates)
	require.True(t, res.Solved)

	rec = do(t, s, http.MethodGet, base+"/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[solver.Snapshot](t, rec)
	require.Equal(t, "cr___", snap.ConfirmedLetters)
	require.Equal(t, "n", snap.AbsentLetters)
	require.Empty(t, snap.MisplacedRounds)

	rec = do(t, s, http.MethodGet, base+"/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "crate", decodeBody[map[string]any](t, rec)["guess"])

	rec = do(t, s, http.MethodPost, base+"/reset", "")
	require.Equal(t, 5, decodeBody[candidatesRes](t, rec).Count)

	rec = do(t, s, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, base+"/state", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/sessions/missing/solve", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodDelete, "/sessions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	created := decodeBody[sessionRes](t, do(t, s, http.MethodPost, "/sessions", ""))
	base := "/sessions/" + created.SessionID

	rec = do(t, s, http.MethodPost, base+"/solve", `{"confirmedLetters":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// two different letters confirmed at index 0
	do(t, s, http.MethodPost, base+"/solve", `{"confirmedLetters":"c____"}`)
	rec = do(t, s, http.MethodPost, base+"/solve", `{"confirmedLetters":"t____"}`)
	res := decodeBody[candidatesRes](t, rec)
	require.True(t, res.Exhausted)
	require.Empty(t, res.Candidates)

	rec = do(t, s, http.MethodGet, base+"/next", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "no_candidates", decodeBody[map[string]string](t, rec)["error"])

	snap := decodeBody[solver.Snapshot](t, do(t, s, http.MethodGet, base+"/state", ""))
	require.Equal(t, "?????", snap.ConfirmedLetters)
}

func TestRestoreMatchesLiveSession(t *testing.T) {
	s := newTestServer(t)

	created := decodeBody[sessionRes](t, do(t, s, http.MethodPost, "/sessions", ""))
	base := "/sessions/" + created.SessionID
	do(t, s, http.MethodPost, base+"/solve", `{"misplacedLetters":"r____","absentLetters":"s"}`)
	do(t, s, http.MethodPost, base+"/solve", `{"confirmedLetters":"c____","misplacedLetters":"__e__"}`)
	live := decodeBody[candidatesRes](t, do(t, s, http.MethodPost, base+"/solve", `{}`))

	state := do(t, s, http.MethodGet, base+"/state", "")
	rec := do(t, s, http.MethodPost, "/sessions/restore", state.Body.String())
	require.Equal(t, http.StatusCreated, rec.Code)
	restored := decodeBody[restoreRes](t, rec)
	require.NotEqual(t, created.SessionID, restored.SessionID)
	require.Equal(t, live.Candidates, restored.Candidates)
	require.Equal(t, len(live.Candidates), restored.Count)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/auth/signup", `{"username":"al","password":"password1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/signup", `{"username":"alice","password":"password1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tok := cookie(rec, "solver_token")
	require.NotNil(t, tok)
	require.True(t, tok.HttpOnly)

	rec = do(t, s, http.MethodPost, "/auth/signup", `{"username":"ALICE","password":"password2"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/auth/me", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[authUser](t, rec)
	require.Equal(t, "alice", me.Username)

	rec = do(t, s, http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/login", `{"username":" Alice ","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, me.ID, decodeBody[authUser](t, rec).ID)

	// bearer header works as well as the cookie
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookie(rec, "solver_token").Value)
	out := httptest.NewRecorder()
	s.Router().ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	rec = do(t, s, http.MethodGet, "/auth/me", "", &http.Cookie{Name: "solver_token", Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, -1, cookie(rec, "solver_token").MaxAge)
}

func TestSolutions(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/solutions", `{"word":"zzzzz","rounds":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/solutions", `{"word":"crane","rounds":3,"date":"yesterday"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/solutions", `{"word":"CRANE","rounds":3,"date":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	anon := cookie(rec, anonCookieName)
	require.NotNil(t, anon)
	sol := decodeBody[daily.Solution](t, rec)
	require.Equal(t, anon.Value, sol.Owner)
	require.Equal(t, "crane", sol.Word)
	require.Equal(t, 1047, sol.GameNumber)

	rec = do(t, s, http.MethodPost, "/solutions", `{"word":"crane","rounds":2,"date":"2024-05-01"}`, anon)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/solutions", `{"word":"slate","rounds":4,"date":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/solutions?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[struct {
		Date      string           `json:"date"`
		Solutions []daily.Solution `json:"solutions"`
	}](t, rec)
	require.Len(t, list.Solutions, 2)
	require.Equal(t, 3, list.Solutions[0].Rounds)

	rec = do(t, s, http.MethodGet, "/solutions/mine", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// signing up claims the anonymous history
	rec = do(t, s, http.MethodPost, "/auth/signup", `{"username":"bob_1","password":"password1"}`, anon)
	require.Equal(t, http.StatusCreated, rec.Code)
	tok := cookie(rec, "solver_token")
	me := decodeBody[authUser](t, rec)

	rec = do(t, s, http.MethodGet, "/solutions/mine", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decodeBody[[]daily.Solution](t, rec)
	require.Len(t, mine, 1)
	require.Equal(t, me.ID, mine[0].Owner)

	rec = do(t, s, http.MethodPost, "/solutions", `{"word":"trace","rounds":5,"date":"2024-05-02"}`, tok)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Nil(t, cookie(rec, anonCookieName))
	require.Equal(t, me.ID, decodeBody[daily.Solution](t, rec).Owner)
}
