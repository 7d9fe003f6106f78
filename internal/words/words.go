// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Load a word list from a configured file, or fall back to the embedded
//     default in the assets package.
//   - Normalize entries (trim, lowercase, a–z only) and keep a single word
//     length, so every word handed to the solver has the same length L.
//   - Lookup and random-pick helpers used by the game simulator.
//
// Word length:
//   - length > 0 keeps only words of exactly that length.
//   - length == 0 takes L from the first valid word in the list.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// ErrEmpty is returned when no usable words remain after normalization.
var ErrEmpty = errors.New("words: list is empty")

// Dictionary is an ordered list of equal-length lowercase words.
type Dictionary struct {
	Words  []string
	Length int
	set    map[string]struct{}
}

// Load reads the dictionary at path, or the embedded default when path is "".
func Load(path string, length int) (*Dictionary, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.WordList()
	} else {
		lines, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return FromList(lines, length)
}

// FromList builds a Dictionary from raw entries. Duplicates keep their first position.
func FromList(list []string, length int) (*Dictionary, error) {
	d := &Dictionary{Length: length, set: make(map[string]struct{}, len(list))}
	for _, raw := range list {
		w := strings.TrimSpace(strings.ToLower(raw))
		if w == "" || !isAlpha(w) {
			continue
		}
		if d.Length == 0 {
			d.Length = len(w)
		}
		if len(w) != d.Length {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.Words = append(d.Words, w)
	}
	if len(d.Words) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.Words) }

// randSource is swapped in tests.
var randSource io.Reader = rand.Reader

// Random returns a cryptographically random word.
func (d *Dictionary) Random() (string, error) {
	n, err := rand.Int(randSource, big.NewInt(int64(len(d.Words))))
	if err != nil {
		return "", fmt.Errorf("random word: %w", err)
	}
	return d.Words[n.Int64()], nil
}

// At returns the word at index i modulo the dictionary size.
func (d *Dictionary) At(i int) string {
	n := len(d.Words)
	return d.Words[((i%n)+n)%n]
}
