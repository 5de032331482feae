// Command selfplay plays games between two configured agents and prints the moves and the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quoridorai/quoridor"
	"github.com/quoridorai/quoridor/game"
)

var (
	configFile = flag.String("config", "", "json file holding a match config")
	p1         = flag.String("p1", "", "strategy of player 1 (env QUORIDOR_P1)")
	p2         = flag.String("p2", "", "strategy of player 2 (env QUORIDOR_P2)")
	opening1   = flag.String("opening1", "", "opening of player 1 (env QUORIDOR_OPENING)")
	opening2   = flag.String("opening2", "", "opening of player 2 (env QUORIDOR_OPENING)")
	seed       = flag.Uint64("seed", 0, "random seed (env QUORIDOR_SEED)")
	maxPlies   = flag.Int("max_plies", -1, "plies before a game is a draw (env QUORIDOR_MAX_PLIES)")
	games      = flag.Int("games", 1, "number of games to play")
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	flag.Parse()

	conf, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	arena, err := quoridor.NewArena(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up the arena")
	}

	ctx := log.Logger.WithContext(context.Background())
	for i := 0; i < *games; i++ {
		winner, decided, err := arena.Play(ctx)
		if err != nil {
			log.Fatal().Err(err).Int("game", i).Msg("game aborted")
		}
		moves := arena.Moves()
		strs := make([]string, len(moves))
		for j, m := range moves {
			strs[j] = string(m)
		}
		fmt.Println(strings.Join(strs, " "))
		if decided {
			fmt.Printf("%v (%s) wins after %d plies\n", winner, arena.Agent(winner).Name(), len(moves))
		} else {
			fmt.Printf("draw after %d plies\n", len(moves))
		}
	}

	for _, p := range []game.Player{game.Player1, game.Player2} {
		a := arena.Agent(p)
		log.Info().
			Stringer("player", p).
			Str("strategy", a.Name()).
			Str("opening", a.Opening.Name).
			Float32("wins", a.Wins).
			Float32("loss", a.Loss).
			Float32("draw", a.Draw).
			Msg("result")
	}
}

// loadConfig layers the config file, the environment and the flags, in that order.
func loadConfig() (quoridor.Config, error) {
	conf := quoridor.DefaultConfig()
	if *configFile != "" {
		b, err := os.ReadFile(*configFile)
		if err != nil {
			return conf, err
		}
		if err := json.Unmarshal(b, &conf); err != nil {
			return conf, err
		}
	}

	conf.Players[0].Strategy = pick(*p1, "QUORIDOR_P1", conf.Players[0].Strategy)
	conf.Players[1].Strategy = pick(*p2, "QUORIDOR_P2", conf.Players[1].Strategy)
	conf.Players[0].Opening = pick(*opening1, "QUORIDOR_OPENING", conf.Players[0].Opening)
	conf.Players[1].Opening = pick(*opening2, "QUORIDOR_OPENING", conf.Players[1].Opening)

	if *seed != 0 {
		conf.Seed = *seed
	} else if v := os.Getenv("QUORIDOR_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return conf, err
		}
		conf.Seed = s
	}

	if *maxPlies >= 0 {
		conf.MaxPlies = *maxPlies
	} else if v := os.Getenv("QUORIDOR_MAX_PLIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return conf, err
		}
		conf.MaxPlies = n
	}
	return conf, nil
}

func pick(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnv(env, def)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
