// internal/game/types.go
//
// Core type definitions for the simulated game.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Status: coarse game state.
//   - Game: state for a single in-progress or finished game.

package game

// Mark represents the evaluation result for a single letter in a guess.
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not occur (or all its copies are already marked).
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Status is the coarse state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Lexicon validates guesses. *words.Dictionary satisfies it.
type Lexicon interface {
	Contains(w string) bool
}

// Game holds the state of a single simulated game.
type Game struct {
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed.
	Guesses  []string // Guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	lexicon Lexicon
}
