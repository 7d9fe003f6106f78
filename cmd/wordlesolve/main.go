// cmd/wordlesolve/main.go
//
// Command-line autoplayer: simulates a game against a chosen answer and lets
// the solver play it, printing each round as coloured tiles.
//
// Usage:
//   wordlesolve                      random answer from the dictionary
//   wordlesolve -answer crane        fixed answer
//   wordlesolve -daily 2024-05-01    the daily answer for a date ("today" works)
//   wordlesolve -state snap.json     restore earlier feedback before playing

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/autoplay"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

type options struct {
	answer    string
	dailyDate string
	wordsPath string
	rows      int
	statePath string
	opening   string
	asJSON    bool
}

func main() {
	var (
		answer    = flag.String("answer", "", "Answer to play against (default: random word)")
		dailyDate = flag.String("daily", "", "Play the daily answer for a date (YYYY-MM-DD or 'today')")
		wordsPath = flag.String("words", "", "Word list file (default: configured or embedded list)")
		rows      = flag.Int("rows", game.DefaultRows, "Maximum number of guesses")
		statePath = flag.String("state", "", "JSON snapshot to restore before playing")
		opening   = flag.String("open", "", "First guess (default: solver's pick)")
		asJSON    = flag.Bool("json", false, "Print the result as JSON instead of tiles")
		verbose   = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		answer:    *answer,
		dailyDate: *dailyDate,
		wordsPath: *wordsPath,
		rows:      *rows,
		statePath: *statePath,
		opening:   *opening,
		asJSON:    *asJSON,
	}
	if err := run(ctx, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, o options) error {
	path := o.wordsPath
	if path == "" {
		path = cfg.Words.Path
	}
	dict, err := words.Load(path, cfg.Words.Length)
	if err != nil {
		return err
	}

	answer, err := pickAnswer(dict, o, cfg.Daily.Salt)
	if err != nil {
		return err
	}

	e, err := solver.New(dict.Words)
	if err != nil {
		return err
	}
	if o.statePath != "" {
		snap, err := readSnapshot(o.statePath)
		if err != nil {
			return err
		}
		left := e.Restore(snap)
		log.Debug().Int("candidates", len(left)).Str("path", o.statePath).Msg("state restored")
	}

	g := game.New(answer, o.rows, dict)
	runOpts := autoplay.Options{Opening: o.opening}
	if !o.asJSON {
		runOpts.OnRound = func(r autoplay.Round) {
			fmt.Println(renderRound(r))
		}
	}
	res, err := autoplay.Run(ctx, e, g, runOpts)

	if o.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
	} else {
		fmt.Println(renderSummary(res))
	}
	if errors.Is(err, autoplay.ErrNoCandidates) {
		return fmt.Errorf("answer %q was excluded by the feedback given", answer)
	}
	return err
}

// pickAnswer resolves -answer, then -daily, then a random dictionary word.
func pickAnswer(dict *words.Dictionary, o options, salt string) (string, error) {
	switch {
	case o.answer != "":
		if !dict.Contains(o.answer) {
			return "", fmt.Errorf("answer %q is not in the word list", o.answer)
		}
		return o.answer, nil
	case o.dailyDate != "":
		day := time.Now().UTC()
		if o.dailyDate != "today" {
			var err error
			if day, err = daily.ParseDateKey(o.dailyDate); err != nil {
				return "", fmt.Errorf("parse -daily: %w", err)
			}
		}
		return dict.At(daily.WordIndex(day, salt, dict.Len())), nil
	default:
		return dict.Random()
	}
}

func readSnapshot(path string) (solver.Snapshot, error) {
	var snap solver.Snapshot
	b, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("parse state: %w", err)
	}
	return snap, nil
}
