// main.go
//
// Entry point for the solver API server.
// Startup order: .env, config, logger, dictionary, database, HTTP.

package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/database"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogger(cfg.Log)

	dict, err := words.Load(cfg.Words.Path, cfg.Words.Length)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Words.Path).Msg("failed to load word list")
	}
	log.Info().Int("words", dict.Len()).Int("length", dict.Length).Msg("dictionary loaded")

	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open database")
	}
	defer db.Close()

	srv := httpserver.New(cfg, dict, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Server.Port).Msg("starting solver server")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogger(c config.LogConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
