// Command legalmoves lists the legal pawn moves and wall placements of the player to move.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quoridorai/quoridor"
	"github.com/quoridorai/quoridor/game"
)

var (
	state    = flag.String("state", "", "position in state notation, the initial position if empty")
	jsonFlag = flag.Bool("json", false, "print the position snapshot and the moves as json")
)

type listing struct {
	quoridor.Snapshot
	Pawns []game.Move `json:"pawnMoves"`
	Walls []game.Move `json:"wallMoves"`
}

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

	l := listing{
		Snapshot: quoridor.Export(s),
		Pawns:    s.LegalPawnMoves(),
		Walls:    s.LegalWalls(),
	}
	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			log.Fatal().Err(err).Msg("cannot encode")
		}
		return
	}
	fmt.Printf("%v to move in %v\n", s.Turn(), s)
	fmt.Printf("pawn moves (%d): %v\n", len(l.Pawns), l.Pawns)
	fmt.Printf("walls (%d): %v\n", len(l.Walls), l.Walls)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
