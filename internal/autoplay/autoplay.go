// internal/autoplay/autoplay.go
//
// The calling workflow around the solver: pick a guess, play it, feed the
// marks back, repeat. The solver only narrows candidates; choosing what to
// guess next and deciding when to stop live here.

package autoplay

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNoCandidates is returned when feedback leaves nothing to guess.
var ErrNoCandidates = errors.New("autoplay: no candidates remain")

// Round is one guess and what came of it.
type Round struct {
	Guess      string             `json:"guess"`
	Marks      []game.Mark        `json:"marks"`
	Feedback   solver.SolveParams `json:"feedback"`
	Candidates int                `json:"candidates"`
}

// Result summarizes a finished run.
type Result struct {
	Answer string          `json:"answer"`
	Status game.Status     `json:"status"`
	Rounds []Round         `json:"rounds"`
	State  solver.Snapshot `json:"state"`
}

// Options tune a run. The zero value is usable.
type Options struct {
	// Opening overrides the first guess.
	Opening string
	// OnRound is called after every round.
	OnRound func(Round)
}

// NextGuess picks the candidate with the most distinct letters; the earliest
// one wins ties. It returns "" for an empty list.
func NextGuess(candidates []string) string {
	return NextUnplayed(candidates, nil)
}

// NextUnplayed is NextGuess restricted to candidates not in played.
// A wrong guess can stay a candidate when its extra copy of a letter is
// reported absent while that letter is also misplaced elsewhere, so a
// caller replaying rounds must skip what it already tried.
func NextUnplayed(candidates []string, played map[string]struct{}) string {
	best, bestScore := "", -1
	for _, w := range candidates {
		if _, ok := played[w]; ok {
			continue
		}
		if s := distinct(w); s > bestScore {
			best, bestScore = w, s
		}
	}
	return best
}

func distinct(w string) int {
	seen := make(map[rune]struct{}, len(w))
	for _, r := range w {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// Run plays g to completion using e. It stops when the game is won or lost,
// when every remaining candidate has already been played (ErrNoCandidates),
// or when ctx is done. No word is guessed twice.
func Run(ctx context.Context, e *solver.Engine, g *game.Game, opts Options) (Result, error) {
	res := Result{Answer: g.Answer}
	guess := opts.Opening
	played := map[string]struct{}{}
	for !g.Finished {
		if err := ctx.Err(); err != nil {
			return finish(res, e, g), err
		}
		if guess == "" {
			guess = NextUnplayed(e.Candidates(), played)
		}
		if guess == "" {
			return finish(res, e, g), ErrNoCandidates
		}

		marks, _, err := g.ApplyGuess(guess)
		if err != nil {
			return finish(res, e, g), err
		}
		played[strings.ToLower(guess)] = struct{}{}
		fb := game.Feedback(guess, marks)
		left := e.Solve(fb)

		r := Round{Guess: guess, Marks: marks, Feedback: fb, Candidates: len(left)}
		res.Rounds = append(res.Rounds, r)
		log.Debug().
			Int("round", len(res.Rounds)).
			Str("guess", guess).
			Int("candidates", len(left)).
			Msg("round played")
		if opts.OnRound != nil {
			opts.OnRound(r)
		}
		guess = ""
	}
	return finish(res, e, g), nil
}

func finish(res Result, e *solver.Engine, g *game.Game) Result {
	res.Status = g.Status()
	res.State = e.State()
	return res
}
