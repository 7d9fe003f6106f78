// internal/httpserver/routes_sessions.go
//
// Solver session routes, mounted under /sessions:
//   - POST   /sessions               → new engine over the loaded dictionary
//   - POST   /sessions/restore       → new engine restored from a snapshot
//   - POST   /sessions/{id}/solve    → ingest one round of feedback
//   - GET    /sessions/{id}/state    → export accumulated feedback
//   - GET    /sessions/{id}/next     → suggested next guess
//   - POST   /sessions/{id}/reset    → forget all feedback
//   - DELETE /sessions/{id}          → drop the session
//
// Every engine call goes through Session.Do, so concurrent requests against
// one session are serialized.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/autoplay"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Post("/restore", s.handleRestoreSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/solve", s.handleSolve)
			r.Get("/state", s.handleState)
			r.Get("/next", s.handleNext)
			r.Post("/reset", s.handleReset)
			r.Delete("/", s.handleDeleteSession)
		})
	})
}

// sessionRes is returned when a session is created.
type sessionRes struct {
	SessionID  string `json:"sessionId"`
	WordLength int    `json:"wordLength"`
	Count      int    `json:"count"`
}

// candidatesRes is returned by every call that changes engine state.
type candidatesRes struct {
	Candidates []string `json:"candidates"`
	Count      int      `json:"count"`
	Solved     bool     `json:"solved"`
	Exhausted  bool     `json:"exhausted"`
}

func candidates(e *solver.Engine) candidatesRes {
	return candidatesRes{
		Candidates: e.Candidates(),
		Count:      len(e.Candidates()),
		Solved:     e.Solved(),
		Exhausted:  e.Exhausted(),
	}
}

// newSession builds an engine over the server dictionary and stores it.
func (s *Server) newSession(r *http.Request) (*store.Session, error) {
	e, err := solver.New(s.dict.Words)
	if err != nil {
		return nil, err
	}
	sess := store.NewSession(e)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.newSession(r)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("session", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionRes{
		SessionID:  sess.ID,
		WordLength: sess.Engine.Length(),
		Count:      len(sess.Engine.Candidates()),
	})
}

// restoreRes is returned by /sessions/restore.
type restoreRes struct {
	SessionID  string `json:"sessionId"`
	WordLength int    `json:"wordLength"`
	candidatesRes
}

func (s *Server) handleRestoreSession(w http.ResponseWriter, r *http.Request) {
	var snap solver.Snapshot
	if err := decode(r, &snap); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.newSession(r)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	var res restoreRes
	sess.Do(func(e *solver.Engine) {
		e.Restore(snap)
		res = restoreRes{SessionID: sess.ID, WordLength: e.Length(), candidatesRes: candidates(e)}
	})
	log.Debug().Str("session", sess.ID).Int("rounds", len(snap.MisplacedRounds)).Msg("session restored")
	writeJSON(w, http.StatusCreated, res)
}

// session loads the {id} session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
		} else {
			writeError(w, http.StatusInternalServerError, "load_failed")
		}
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var p solver.SolveParams
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res candidatesRes
	sess.Do(func(e *solver.Engine) {
		e.Solve(p)
		res = candidates(e)
		if e.Poisoned() {
			log.Info().Str("session", sess.ID).Msg("conflicting confirmed letters; no candidates until reset")
		}
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var snap solver.Snapshot
	sess.Do(func(e *solver.Engine) { snap = e.State() })
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var guess string
	var left int
	sess.Do(func(e *solver.Engine) {
		guess = autoplay.NextGuess(e.Candidates())
		left = len(e.Candidates())
	})
	if guess == "" {
		writeError(w, http.StatusConflict, "no_candidates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guess": guess, "count": left})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res candidatesRes
	sess.Do(func(e *solver.Engine) {
		e.Reset()
		res = candidates(e)
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
