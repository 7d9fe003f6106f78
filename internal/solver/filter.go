// internal/solver/filter.go
//
// Filter pipeline: four ordered passes over the dictionary, each one
// consuming the survivors of the previous pass.
//
//   1. settled letters must match their confirmed position
//   2. absent letters must not appear outside confirmed positions
//   3. no unsettled index may hold a letter reported misplaced there
//   4. every misplaced letter must appear somewhere other than where reported
//
// Candidates are rebuilt from the full dictionary on every call. State is
// only read here.

package solver

// entry is a dictionary word split into letters once, up front.
type entry struct {
	text    string
	letters []rune
}

func newEntries(words []string) []entry {
	out := make([]entry, len(words))
	for i, w := range words {
		out[i] = entry{text: w, letters: []rune(w)}
	}
	return out
}

// at returns the letter at i; words shorter than L read as unknown there.
func (e entry) at(i int) rune {
	if i < len(e.letters) {
		return e.letters[i]
	}
	return unknown
}

// Filter returns the words of dictionary consistent with s, in dictionary order.
// All words are expected to have length s.Length().
func Filter(s State, dictionary []string) []string {
	return texts(filter(s, newEntries(dictionary)))
}

func filter(s State, words []entry) []entry {
	settled, unsettled := Classify(s.confirmed)

	words = matchSettled(s.confirmed, settled, words)
	words = excludeAbsent(s, words)
	words = excludeMisplacedAt(s.misplaced, unsettled, words)
	for _, rec := range s.misplaced.records {
		words = requireMisplaced(rec, words)
	}
	return words
}

// keep returns the entries for which ok is true, preserving order.
func keep(words []entry, ok func(entry) bool) []entry {
	out := make([]entry, 0, len(words))
	for _, w := range words {
		if ok(w) {
			out = append(out, w)
		}
	}
	return out
}

func texts(words []entry) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.text
	}
	return out
}

// Pass 1.
func matchSettled(c Confirmed, settled []int, words []entry) []entry {
	if c.contradiction {
		return []entry{}
	}
	return keep(words, func(w entry) bool {
		for _, i := range settled {
			if w.at(i) != c.letters[i] {
				return false
			}
		}
		return true
	})
}

// Pass 2. Letters at confirmed positions are not counted, so a letter that is
// both confirmed and reported absent (a repeated guess letter) does not
// reject the word. Absent letters that also appear in any misplaced record
// are skipped altogether.
func excludeAbsent(s State, words []entry) []entry {
	var checked []rune
	for _, l := range s.absent.order {
		if !s.misplaced.contains(l) {
			checked = append(checked, l)
		}
	}
	if len(checked) == 0 {
		return words
	}
	return keep(words, func(w entry) bool {
		for i, l := range w.letters {
			if c, ok := s.confirmed.At(i); ok && c == l {
				continue
			}
			for _, a := range checked {
				if l == a {
					return false
				}
			}
		}
		return true
	})
}

// Pass 3.
func excludeMisplacedAt(r Rounds, unsettled []int, words []entry) []entry {
	if r.Len() == 0 {
		return words
	}
	return keep(words, func(w entry) bool {
		for _, i := range unsettled {
			if r.reportedAt(i, w.at(i)) {
				return false
			}
		}
		return true
	})
}

// Pass 4, for a single record.
func requireMisplaced(rec positions, words []entry) []entry {
	return keep(words, func(w entry) bool {
		for j, l := range rec {
			if l == unknown {
				continue
			}
			if w.at(j) == l {
				return false
			}
			if !containsElsewhere(w, l, j) {
				return false
			}
		}
		return true
	})
}

func containsElsewhere(w entry, l rune, j int) bool {
	for i, r := range w.letters {
		if i != j && r == l {
			return true
		}
	}
	return false
}
