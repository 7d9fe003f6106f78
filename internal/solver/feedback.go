// internal/solver/feedback.go
//
// Feedback input and its normalization.
//
// A round of feedback arrives as three positional strings. Slots with no
// claim may use any of the accepted marker characters; they are folded into
// a single internal unknown value here, so nothing past this file needs to
// know which marker a caller happened to use.

package solver

import (
	"strings"
	"unicode"
)

// SolveParams is one round of feedback reported by the game.
//
//   - Confirmed: letters known to sit at their index ("green").
//   - Misplaced: letters present in the word but not at their index ("yellow").
//   - Absent:    letters reported as not in the word ("gray").
//
// Each string is at most L characters long; extra characters are ignored.
type SolveParams struct {
	Confirmed string `json:"confirmedLetters"`
	Misplaced string `json:"misplacedLetters"`
	Absent    string `json:"absentLetters"`
}

// Marker is written for unknown slots when state is exported.
const Marker = '_'

const (
	unknown      rune = 0
	poisonMarker rune = '?'
)

// isMarker reports whether r is one of the interchangeable "no info" characters.
func isMarker(r rune) bool {
	switch r {
	case '_', ' ', '-', '·':
		return true
	}
	return false
}

// positions is a fixed-length positional record. Unknown slots hold 0.
type positions []rune

// clean lowercases s and strips trailing whitespace.
func clean(s string) string {
	return strings.TrimRightFunc(strings.ToLower(s), unicode.IsSpace)
}

// parsePositions normalizes s into a record of exactly length slots,
// padding with unknown and dropping anything past length.
func parsePositions(s string, length int) positions {
	p := make(positions, length)
	i := 0
	for _, r := range clean(s) {
		if i == length {
			break
		}
		if !isMarker(r) {
			p[i] = r
		}
		i++
	}
	return p
}

// parseLetters returns the letters of s in order, markers removed.
func parseLetters(s string) []rune {
	var out []rune
	for _, r := range clean(s) {
		if !isMarker(r) {
			out = append(out, r)
		}
	}
	return out
}

func (p positions) empty() bool {
	for _, r := range p {
		if r != unknown {
			return false
		}
	}
	return true
}

// String renders p with Marker in unknown slots.
func (p positions) String() string {
	var b strings.Builder
	for _, r := range p {
		if r == unknown {
			r = Marker
		}
		b.WriteRune(r)
	}
	return b.String()
}
