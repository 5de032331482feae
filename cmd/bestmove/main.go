// Command bestmove reads a position and prints the move a strategy chooses in it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor"
	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/mcts"
	"github.com/quoridorai/quoridor/strategy"
)

var (
	state    = flag.String("state", "", "position in state notation, the initial position if empty")
	name     = flag.String("strategy", "MCTS10k", "strategy name")
	seedFlag = flag.Uint64("seed", 0, "random seed (env QUORIDOR_SEED)")
	dotFile  = flag.String("dot", "", "write the MCTS tree as DOT into this file")
	dotDepth = flag.Int("dot_depth", 2, "depth of the DOT dump")
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	flag.Parse()

	s := game.NewGame()
	if *state != "" {
		var err error
		if s, err = game.ParseState(*state); err != nil {
			log.Fatal().Err(err).Msg("cannot read the position")
		}
	}
	conf, err := strategy.Parse(*name)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read the strategy")
	}
	seed := *seedFlag
	if seed == 0 {
		if seed, err = strconv.ParseUint(getEnv("QUORIDOR_SEED", "1"), 10, 64); err != nil {
			log.Fatal().Err(err).Msg("bad QUORIDOR_SEED")
		}
	}
	rng := rand.New(rand.NewSource(seed))
	ctx := log.Logger.WithContext(context.Background())

	var m game.Move
	if conf.Kind == strategy.MCTS && *dotFile != "" {
		t := mcts.New(conf.MCTS, rng)
		if m, err = t.Search(ctx, s); err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		dot, err := t.Dot(*dotDepth)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot render the tree")
		}
		if err := os.WriteFile(*dotFile, []byte(dot), 0644); err != nil {
			log.Fatal().Err(err).Msg("cannot write the tree")
		}
	} else if m, err = quoridor.ChooseMove(ctx, s, conf, rng); err != nil {
		log.Fatal().Err(err).Msg("no move")
	}
	fmt.Println(m)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
