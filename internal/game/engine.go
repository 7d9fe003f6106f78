// internal/game/engine.go
//
// A local game with a hidden answer. It stands in for the real puzzle page:
// guesses are scored here, and the marks are turned into the positional
// feedback strings the solver consumes.
//
// Responsibilities:
//   - Validate and apply guesses (finished, length, alphabetic, lexicon).
//   - Score guesses using the classic two-pass algorithm.
//   - Track state transitions: playing → won/lost.
//   - Convert marks to solver.SolveParams.

package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DefaultRows is the usual number of guesses allowed.
const DefaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrUnknownWord  = errors.New("not in word list")
)

// New constructs a game for answer. rows <= 0 means DefaultRows.
// A nil lexicon accepts any alphabetic guess of the right length.
func New(answer string, rows int, lexicon Lexicon) *Game {
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		Answer:  strings.ToLower(strings.TrimSpace(answer)),
		Rows:    rows,
		Guesses: []string{},
		lexicon: lexicon,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// State transitions:
//   - If all tiles are hits → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]Mark, Status, error) {
	if g.Finished {
		return nil, g.Status(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != len(g.Answer) || !isAlpha(guess) {
		return nil, g.Status(), ErrInvalidGuess
	}
	if g.lexicon != nil && !g.lexicon.Contains(guess) {
		return nil, g.Status(), ErrUnknownWord
	}

	marks := Score(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.Status(), nil
}

// Status reports the current game state.
func (g *Game) Status() Status {
	if g.Finished {
		if g.Won {
			return StatusWon
		}
		return StatusLost
	}
	return StatusPlaying
}

// Score implements the standard two-pass scoring.
//
// Pass 1: mark exact matches as hits and count the remaining answer letters.
// Pass 2: for each non-hit guess letter, mark present while copies remain,
// otherwise miss. Repeated letters are handled correctly in both words.
func Score(guess, answer string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	if n != len(answer) {
		for i := range res {
			res[i] = MarkMiss
		}
		return res
	}

	counts := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = MarkPresent
			counts[c]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// Feedback converts a scored guess into one round of solver feedback:
// hits fill the confirmed string, presents the misplaced string, misses the
// absent string, with solver.Marker in every other slot.
func Feedback(guess string, marks []Mark) solver.SolveParams {
	n := len(marks)
	confirmed := []byte(strings.Repeat(string(solver.Marker), n))
	misplaced := []byte(strings.Repeat(string(solver.Marker), n))
	absent := []byte(strings.Repeat(string(solver.Marker), n))
	for i, m := range marks {
		if i >= len(guess) {
			break
		}
		switch m {
		case MarkHit:
			confirmed[i] = guess[i]
		case MarkPresent:
			misplaced[i] = guess[i]
		default:
			absent[i] = guess[i]
		}
	}
	return solver.SolveParams{
		Confirmed: string(confirmed),
		Misplaced: string(misplaced),
		Absent:    string(absent),
	}
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}
