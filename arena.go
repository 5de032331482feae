package quoridor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/opening"
)

// Arena plays games between two agents and keeps their statistics.
type Arena struct {
	game     game.State
	initial  game.State
	agents   [2]*Agent
	maxPlies int

	name       string
	gameNumber int
	moves      []game.Move
}

// NewArena builds an arena and both agents from conf.
func NewArena(conf Config) (*Arena, error) {
	if !conf.IsValid() {
		return nil, errors.Wrapf(game.ErrInvalidConfig, "arena config %+v", conf)
	}
	if err := opening.Validate(conf.Players[0].Opening, conf.Players[1].Opening); err != nil {
		return nil, errors.Wrap(err, "opening book")
	}
	g, err := game.New(game.Size, conf.WallsPerPlayer)
	if err != nil {
		return nil, err
	}
	var agents [2]*Agent
	for i, pc := range conf.Players {
		// distinct streams per side
		if agents[i], err = NewAgent(game.Player(i), pc, conf.Seed+uint64(i)); err != nil {
			return nil, err
		}
	}
	a := MakeArena(g, agents[0], agents[1], conf.MaxPlies, conf.Name)
	return &a, nil
}

// MakeArena makes an arena playing from g, with p1 moving first.
func MakeArena(g game.State, p1, p2 *Agent, maxPlies int, name string) Arena {
	if name == "" {
		name = "UNKNOWN GAME"
	}
	p1.Player, p2.Player = game.Player1, game.Player2
	return Arena{
		game:     g,
		initial:  g,
		agents:   [2]*Agent{p1, p2},
		maxPlies: maxPlies,
		name:     name,
	}
}

// Play plays one game and records the result on both agents. decided is false for a draw, which
// happens when MaxPlies runs out or the side to move has no move. The arena is ready for the
// next game afterwards.
func (a *Arena) Play(ctx context.Context) (winner game.Player, decided bool, err error) {
	a.game = a.initial
	a.moves = a.moves[:0]
	for _, ag := range a.agents {
		ag.Reset()
	}

	for !a.game.Over() {
		if a.maxPlies > 0 && len(a.moves) >= a.maxPlies {
			break
		}
		if err = ctx.Err(); err != nil {
			return game.Player1, false, err
		}
		current := a.agents[a.game.Turn()]
		var best game.Move
		best, err = current.Search(ctx, a.game)
		if errors.Cause(err) == game.ErrNoMove {
			err = nil
			break
		}
		if err != nil {
			return game.Player1, false, errors.WithMessagef(err, "%s, game %d, ply %d", a.name, a.gameNumber, len(a.moves))
		}
		if err = a.game.Apply(best); err != nil {
			return game.Player1, false, errors.WithMessagef(err, "%s played by %v", best, current.Name())
		}
		a.moves = append(a.moves, best)
	}

	winner, decided = a.game.Winner()
	a.record(winner, decided)
	zerolog.Ctx(ctx).Debug().
		Str("arena", a.name).
		Int("game", a.gameNumber).
		Int("plies", len(a.moves)).
		Bool("decided", decided).
		Stringer("winner", winner).
		Msg("game over")
	a.gameNumber++
	return winner, decided, nil
}

func (a *Arena) record(winner game.Player, decided bool) {
	for _, ag := range a.agents {
		ag.Lock()
		switch {
		case !decided:
			ag.Draw++
		case ag.Player == winner:
			ag.Wins++
		default:
			ag.Loss++
		}
		ag.Unlock()
	}
}

// ResetStats clears the statistics of both agents.
func (a *Arena) ResetStats() {
	for _, ag := range a.agents {
		ag.resetStats()
	}
}

// Agent returns the agent playing p.
func (a *Arena) Agent(p game.Player) *Agent { return a.agents[p] }

// GameNumber returns the number of games played.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the arena.
func (a *Arena) Name() string { return a.name }

// State returns the position the last game ended in.
func (a *Arena) State() game.State { return a.game }

// Moves returns the moves of the last game.
func (a *Arena) Moves() []game.Move { return append([]game.Move(nil), a.moves...) }
