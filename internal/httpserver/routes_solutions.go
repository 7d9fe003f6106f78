// internal/httpserver/routes_solutions.go
//
// Solution log, mounted under /solutions:
//   - POST /solutions        → record a solved puzzle for the caller
//   - GET  /solutions?date=  → fewest-rounds list for a date (default today)
//   - GET  /solutions/mine   → the signed-in user's history
//
// Guests are identified by an anonymous cookie; their rows move to the
// account on signup or login.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
)

func (s *Server) mountSolutions(r chi.Router) {
	r.Route("/solutions", func(r chi.Router) {
		r.With(s.withOptionalAuth).Post("/", s.handleRecordSolution)
		r.Get("/", s.handleListSolutions)
		r.With(s.requireAuth).Get("/mine", s.handleMySolutions)
	})
}

type recordReq struct {
	Word   string `json:"word"`
	Rounds int    `json:"rounds"`
	Date   string `json:"date,omitempty"`
}

func (s *Server) handleRecordSolution(w http.ResponseWriter, r *http.Request) {
	var body recordReq
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word := strings.ToLower(strings.TrimSpace(body.Word))
	if !s.dict.Contains(word) {
		writeError(w, http.StatusBadRequest, "unknown_word")
		return
	}
	if body.Rounds < 1 {
		writeError(w, http.StatusBadRequest, "bad_rounds")
		return
	}
	date := body.Date
	if date == "" {
		date = daily.DateKey(s.now())
	}
	day, err := daily.ParseDateKey(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}

	sol := daily.Solution{
		Owner:      s.ownerID(w, r),
		Date:       date,
		GameNumber: daily.GameNumber(day),
		Word:       word,
		Rounds:     body.Rounds,
	}
	if err := s.solutions.Record(r.Context(), sol); err != nil {
		if errors.Is(err, daily.ErrAlreadyRecorded) {
			writeError(w, http.StatusConflict, "already_recorded")
			return
		}
		log.Error().Err(err).Str("date", date).Msg("record solution")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	log.Info().Str("owner", sol.Owner).Str("date", date).Int("rounds", sol.Rounds).Msg("solution recorded")
	writeJSON(w, http.StatusCreated, sol)
}

func (s *Server) handleListSolutions(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := daily.ParseDateKey(date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	out, err := s.solutions.ByDate(r.Context(), date, queryInt(r, "limit"))
	if err != nil {
		log.Error().Err(err).Msg("list solutions")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "solutions": out})
}

func (s *Server) handleMySolutions(w http.ResponseWriter, r *http.Request) {
	out, err := s.solutions.ByOwner(r.Context(), currentUser(r).ID, queryInt(r, "limit"))
	if err != nil {
		log.Error().Err(err).Msg("list own solutions")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// queryInt reads a non-negative integer query param; anything else is 0.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
