// Package strategy picks moves for a player. Every strategy is a function of the state and an
// explicit random source; none of them mutates the state it is given.
package strategy

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/mcts"
)

var (
	// ErrUnknownStrategy is returned for strategy or opening names that are not recognised.
	ErrUnknownStrategy = errors.New("unknown strategy or opening")
	// ErrHumanPlayer is returned when a move is requested from a human player.
	ErrHumanPlayer = errors.New("human players choose their own moves")
)

// Kind enumerates the strategies.
type Kind int

const (
	Human Kind = iota
	Random
	ShortestPath
	Defensive
	Balanced
	Adaptive
	Mirror
	Minimax
	SimulatedAnnealing
	MCTS
	maxKind
)

var kindNames = [...]string{
	Human:              "Human",
	Random:             "Random",
	ShortestPath:       "ShortestPath",
	Defensive:          "Defensive",
	Balanced:           "Balanced",
	Adaptive:           "Adaptive",
	Mirror:             "Mirror",
	Minimax:            "Minimax",
	SimulatedAnnealing: "SimulatedAnnealing",
	MCTS:               "MCTS",
}

func (k Kind) String() string {
	if k < 0 || k >= maxKind {
		return "UNKNOWN STRATEGY"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= maxKind {
		return nil, errors.Wrapf(ErrUnknownStrategy, "kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownStrategy, "kind %q", text)
}

const (
	DefaultWallProbability    = 0.7
	DefaultDefenseProbability = 0.5
)

// Config selects a strategy and carries its parameters. Fields not used by Kind are ignored.
type Config struct {
	Kind Kind `json:"kind"`

	// WallProbability is p for Defensive and q for Balanced.
	WallProbability float64 `json:"wall_probability,omitempty"`

	// Depth of the Minimax search in plies.
	Depth int `json:"depth,omitempty"`

	// SimulatedAnnealing
	Temperature      float64 `json:"temperature,omitempty"`
	Cooling          float64 `json:"cooling,omitempty"`
	GlobalIterations int     `json:"global_iterations,omitempty"`
	LocalIterations  int     `json:"local_iterations,omitempty"`

	MCTS mcts.Config `json:"mcts"`
}

// DefaultConfig returns the configuration of kind with its default parameters.
func DefaultConfig(kind Kind) Config {
	conf := Config{Kind: kind}
	switch kind {
	case Defensive:
		conf.WallProbability = DefaultWallProbability
	case Balanced:
		conf.WallProbability = DefaultDefenseProbability
	case Minimax:
		conf.Depth = 1
	case SimulatedAnnealing:
		conf.Temperature = 1
		conf.Cooling = 0.9
		conf.GlobalIterations = 50
		conf.LocalIterations = 20
	case MCTS:
		conf.MCTS = mcts.DefaultConfig()
	}
	return conf
}

func (c Config) IsValid() bool {
	switch c.Kind {
	case Human, Random, ShortestPath, Adaptive, Mirror:
		return true
	case Defensive, Balanced:
		return c.WallProbability >= 0 && c.WallProbability <= 1
	case Minimax:
		return c.Depth >= 1
	case SimulatedAnnealing:
		return c.Temperature > 0 && c.Cooling > 0 && c.Cooling <= 1 &&
			c.GlobalIterations > 0 && c.LocalIterations > 0
	case MCTS:
		return c.MCTS.IsValid()
	}
	return false
}

// Name formats the configuration the way Parse reads it.
func (c Config) Name() string {
	switch c.Kind {
	case Minimax:
		return "Minimax" + strconv.Itoa(c.Depth)
	case SimulatedAnnealing:
		return "SimulatedAnnealing" + strconv.FormatFloat(c.Temperature, 'g', -1, 64)
	case MCTS:
		if c.MCTS.Simulations == 0 && c.MCTS.Timeout > 0 {
			return "MCTS" + strconv.FormatFloat(c.MCTS.Timeout.Seconds(), 'g', -1, 64) + "sec"
		}
		if c.MCTS.Simulations >= 1000 && c.MCTS.Simulations%1000 == 0 {
			return "MCTS" + strconv.Itoa(c.MCTS.Simulations/1000) + "k"
		}
		return "MCTS" + strconv.Itoa(c.MCTS.Simulations)
	}
	return c.Kind.String()
}

// Parse reads a strategy name such as "Random", "Minimax3", "SimulatedAnnealing0.5",
// "MCTS60k", "MCTS500" or "MCTS1.5sec". A missing parameter takes its default.
func Parse(name string) (Config, error) {
	switch name {
	case "Human", "Random", "ShortestPath", "Defensive", "Balanced", "Adaptive", "Mirror":
		var k Kind
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return Config{}, err
		}
		return DefaultConfig(k), nil
	}

	unknown := errors.Wrapf(ErrUnknownStrategy, "strategy %q", name)
	switch {
	case strings.HasPrefix(name, "SimulatedAnnealing"):
		conf := DefaultConfig(SimulatedAnnealing)
		if arg := strings.TrimPrefix(name, "SimulatedAnnealing"); arg != "" {
			t, err := strconv.ParseFloat(arg, 64)
			if err != nil || t <= 0 {
				return Config{}, unknown
			}
			conf.Temperature = t
		}
		return conf, nil

	case strings.HasPrefix(name, "Minimax"):
		conf := DefaultConfig(Minimax)
		if arg := strings.TrimPrefix(name, "Minimax"); arg != "" {
			d, err := strconv.Atoi(arg)
			if err != nil || d < 1 {
				return Config{}, unknown
			}
			conf.Depth = d
		}
		return conf, nil

	case strings.HasPrefix(name, "MCTS"):
		conf := DefaultConfig(MCTS)
		arg := strings.TrimPrefix(name, "MCTS")
		switch {
		case arg == "":
		case strings.HasSuffix(arg, "sec"):
			secs, err := strconv.ParseFloat(strings.TrimSuffix(arg, "sec"), 64)
			if err != nil || secs <= 0 {
				return Config{}, unknown
			}
			conf.MCTS.Simulations = 0
			conf.MCTS.Timeout = time.Duration(secs * float64(time.Second))
		default:
			mult := 1
			if strings.HasSuffix(arg, "k") {
				mult, arg = 1000, strings.TrimSuffix(arg, "k")
			}
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return Config{}, unknown
			}
			conf.MCTS.Simulations = n * mult
		}
		return conf, nil
	}
	return Config{}, unknown
}

// Choose returns the move conf plays in s. When the game is over there is no move: Choose
// returns game.ResignMove and game.ErrNoMove.
func Choose(ctx context.Context, s game.State, conf Config, rng *rand.Rand) (game.Move, error) {
	if !conf.IsValid() {
		return game.ResignMove, errors.Wrapf(game.ErrInvalidConfig, "strategy %+v", conf)
	}
	if conf.Kind == Human {
		return game.ResignMove, ErrHumanPlayer
	}
	if s.Over() {
		return game.ResignMove, errors.Wrapf(game.ErrNoMove, "state %v", s)
	}

	var a game.Action
	switch conf.Kind {
	case Random:
		a = chooseRandom(s, rng)
	case ShortestPath:
		a = shortestPath(s)
	case Defensive:
		a = defensive(s, conf.WallProbability, rng)
	case Balanced:
		a = balanced(s, conf.WallProbability, rng)
	case Adaptive:
		a = adaptive(s, rng)
	case Mirror:
		a = mirror(s, rng)
	case Minimax:
		a, _ = minimax(s, conf.Depth)
	case SimulatedAnnealing:
		a = anneal(ctx, s, conf, rng)
	case MCTS:
		return mcts.Search(ctx, s, conf.MCTS, rng)
	}
	zerolog.Ctx(ctx).Debug().Str("strategy", conf.Name()).Stringer("player", s.Turn()).Stringer("move", a).Msg("chose move")
	return a.Move(), nil
}
