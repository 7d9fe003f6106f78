// internal/solver/engine.go
//
// Engine owns a fixed dictionary and the feedback accumulated against it.
// Responsibilities:
//   - Accept rounds of feedback (Solve) and return the surviving words.
//   - Cache the latest candidate list between calls.
//   - Export and restore accumulated state (Snapshot).
//
// Notes:
//   - The engine never picks a next guess; that is left to the caller.
//   - Bad feedback never errors. Conflicting confirmations poison the engine
//     (no candidates until Reset) and over-long strings are truncated.
//   - An Engine is not safe for concurrent use. Callers serialize access;
//     separate engines share nothing and may run in parallel.

package solver

import (
	"errors"
	"strings"
)

// ErrEmptyDictionary is returned when an engine is given no words.
var ErrEmptyDictionary = errors.New("solver: empty dictionary")

// Engine narrows a dictionary down to the words consistent with feedback.
type Engine struct {
	words      []entry
	length     int
	state      State
	candidates []string
}

// New constructs an engine over dictionary. The word length L is taken from
// the first word; every word must have that length.
func New(dictionary []string) (*Engine, error) {
	e := &Engine{}
	if err := e.ResetDictionary(dictionary); err != nil {
		return nil, err
	}
	return e, nil
}

// ResetDictionary replaces the dictionary (and possibly L) and clears all state.
func (e *Engine) ResetDictionary(dictionary []string) error {
	if len(dictionary) == 0 {
		return ErrEmptyDictionary
	}
	lower := make([]string, len(dictionary))
	for i, w := range dictionary {
		lower[i] = strings.ToLower(w)
	}
	e.words = newEntries(lower)
	e.length = len(e.words[0].letters)
	e.Reset()
	return nil
}

// Reset forgets all feedback. Candidates go back to the whole dictionary.
func (e *Engine) Reset() {
	e.state = NewState(e.length)
	e.candidates = texts(e.words)
}

// Solve merges one round of feedback and returns the words still possible,
// in dictionary order. The returned slice must not be modified.
func (e *Engine) Solve(p SolveParams) []string {
	e.state = Ingest(e.state, p)
	e.candidates = texts(filter(e.state, e.words))
	return e.candidates
}

// Candidates returns the result of the last Solve (or the dictionary).
func (e *Engine) Candidates() []string { return e.candidates }

// Length is the word length L.
func (e *Engine) Length() int { return e.length }

// Size is the number of dictionary words.
func (e *Engine) Size() int { return len(e.words) }

// Solved reports whether exactly one candidate remains.
func (e *Engine) Solved() bool { return len(e.candidates) == 1 }

// Exhausted reports whether no candidates remain.
func (e *Engine) Exhausted() bool { return len(e.candidates) == 0 }

// Poisoned reports whether conflicting confirmations have been merged.
func (e *Engine) Poisoned() bool { return e.state.confirmed.contradiction }

// Current returns the accumulated state value.
func (e *Engine) Current() State { return e.state }

// State exports the accumulated feedback.
func (e *Engine) State() Snapshot { return e.state.Snapshot() }

// Restore replaces the engine's state with snap and returns the candidates.
//
// Confirmed and absent letters are applied first in a single round, then
// each misplaced record is replayed on its own. The result is the same as
// filtering against snap directly.
func (e *Engine) Restore(snap Snapshot) []string {
	e.Reset()
	first := SolveParams{Confirmed: snap.ConfirmedLetters, Absent: snap.AbsentLetters}
	if isPoison(snap.ConfirmedLetters, e.length) {
		e.state.confirmed = contradiction(e.length)
		first.Confirmed = ""
	}
	e.Solve(first)
	for _, rec := range snap.MisplacedRounds {
		e.Solve(SolveParams{Misplaced: rec})
	}
	return e.candidates
}
