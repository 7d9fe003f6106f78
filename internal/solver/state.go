// internal/solver/state.go
//
// Accumulated feedback state and the pure functions that grow it.
//
// State is treated as an immutable value: Ingest never touches its input and
// returns a fresh State, so an older value can be kept around as an undo
// point or snapshot without copying.

package solver

import (
	"github.com/bits-and-blooms/bitset"
)

// State is everything learned from the feedback rounds so far.
type State struct {
	length    int
	confirmed Confirmed
	misplaced Rounds
	absent    letterSet
}

// NewState returns an empty State for words of the given length.
func NewState(length int) State {
	return State{
		length:    length,
		confirmed: Confirmed{letters: make(positions, length)},
		misplaced: newRounds(length),
		absent:    letterSet{seen: bitset.New(0)},
	}
}

// Length is the word length the state was created for.
func (s State) Length() int { return s.length }

// Confirmed returns the accumulated confirmed letters.
func (s State) Confirmed() Confirmed { return s.confirmed }

// Ingest merges one round of feedback into s and returns the result.
func Ingest(s State, p SolveParams) State {
	next := s
	next.confirmed = s.confirmed.merge(parsePositions(p.Confirmed, s.length))
	// An all-marker record such as "_____" carries no letters and is dropped
	// like an empty one, so it never shows up in exported rounds. Filtering
	// would ignore it either way.
	if rec := parsePositions(p.Misplaced, s.length); !rec.empty() {
		next.misplaced = s.misplaced.add(rec)
	}
	next.absent = s.absent.add(parseLetters(p.Absent))
	return next
}

// Classify splits [0, L) into indexes with a confirmed letter (settled)
// and those without (unsettled). A contradiction settles every index.
func Classify(c Confirmed) (settled, unsettled []int) {
	for i, r := range c.letters {
		if c.contradiction || r != unknown {
			settled = append(settled, i)
		} else {
			unsettled = append(unsettled, i)
		}
	}
	return settled, unsettled
}

// ---------------------------------------------------------------------------
// Confirmed letters
// ---------------------------------------------------------------------------

// Confirmed is either a set of known letters by position or a contradiction.
// A contradiction is reached when two rounds confirm different letters at
// the same index; nothing matches it until the engine is reset.
type Confirmed struct {
	letters       positions
	contradiction bool
}

// Contradiction reports whether conflicting confirmations were merged.
func (c Confirmed) Contradiction() bool { return c.contradiction }

// At returns the confirmed letter at i, if any.
func (c Confirmed) At(i int) (rune, bool) {
	if c.contradiction || i < 0 || i >= len(c.letters) || c.letters[i] == unknown {
		return unknown, false
	}
	return c.letters[i], true
}

func (c Confirmed) merge(in positions) Confirmed {
	if c.contradiction {
		return c
	}
	out := make(positions, len(c.letters))
	for i, have := range c.letters {
		got := in[i]
		switch {
		case have != unknown && got != unknown && have != got:
			return contradiction(len(c.letters))
		case have != unknown:
			out[i] = have
		default:
			out[i] = got
		}
	}
	return Confirmed{letters: out}
}

func contradiction(length int) Confirmed {
	return Confirmed{letters: make(positions, length), contradiction: true}
}

// String renders the confirmed letters, or L copies of '?' for a contradiction.
func (c Confirmed) String() string {
	if !c.contradiction {
		return c.letters.String()
	}
	out := make(positions, len(c.letters))
	for i := range out {
		out[i] = poisonMarker
	}
	return out.String()
}

// isPoison reports whether s is the exported form of a contradiction.
func isPoison(s string, length int) bool {
	n := 0
	for _, r := range s {
		if r != poisonMarker {
			return false
		}
		n++
	}
	return length > 0 && n == length
}

// ---------------------------------------------------------------------------
// Misplaced rounds
// ---------------------------------------------------------------------------

// Rounds is an insertion-ordered set of misplaced-letter records.
type Rounds struct {
	records []positions
	keys    map[string]struct{}
	letters *bitset.BitSet   // every letter in any record
	at      []*bitset.BitSet // at[i]: letters reported misplaced at index i
}

func newRounds(length int) Rounds {
	at := make([]*bitset.BitSet, length)
	for i := range at {
		at[i] = bitset.New(0)
	}
	return Rounds{keys: map[string]struct{}{}, letters: bitset.New(0), at: at}
}

// Len is the number of distinct records.
func (r Rounds) Len() int { return len(r.records) }

// Strings returns the records in first-seen order.
func (r Rounds) Strings() []string {
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.String()
	}
	return out
}

// add returns r with rec appended, or r itself if rec is already present.
func (r Rounds) add(rec positions) Rounds {
	key := string(rec)
	if _, ok := r.keys[key]; ok {
		return r
	}
	next := Rounds{
		records: append(append([]positions(nil), r.records...), rec),
		keys:    make(map[string]struct{}, len(r.keys)+1),
		letters: r.letters.Clone(),
		at:      make([]*bitset.BitSet, len(r.at)),
	}
	for k := range r.keys {
		next.keys[k] = struct{}{}
	}
	next.keys[key] = struct{}{}
	for i, b := range r.at {
		next.at[i] = b.Clone()
	}
	for i, l := range rec {
		if l == unknown {
			continue
		}
		next.letters.Set(uint(l))
		next.at[i].Set(uint(l))
	}
	return next
}

// contains reports whether l appears in any record.
func (r Rounds) contains(l rune) bool { return r.letters.Test(uint(l)) }

// reportedAt reports whether any record has l at index i.
func (r Rounds) reportedAt(i int, l rune) bool {
	return l != unknown && i < len(r.at) && r.at[i].Test(uint(l))
}

// ---------------------------------------------------------------------------
// Absent letters
// ---------------------------------------------------------------------------

// letterSet keeps letters deduplicated in first-seen order.
type letterSet struct {
	order []rune
	seen  *bitset.BitSet
}

func (s letterSet) add(letters []rune) letterSet {
	next := s
	cloned := false
	for _, l := range letters {
		if next.seen.Test(uint(l)) {
			continue
		}
		if !cloned {
			next = letterSet{order: append([]rune(nil), s.order...), seen: s.seen.Clone()}
			cloned = true
		}
		next.order = append(next.order, l)
		next.seen.Set(uint(l))
	}
	return next
}

func (s letterSet) String() string { return string(s.order) }
