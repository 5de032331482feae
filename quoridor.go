// Package quoridor is the entry point of the API: a Game session that hosts can drive move by
// move, and an Arena that plays agents against each other.
package quoridor

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/strategy"
)

// Game is one live game with an agent per player. Both players start out Human. A Game is safe
// for concurrent use.
type Game struct {
	sync.Mutex
	state   game.State
	initial game.State
	agents  [2]*Agent
	seed    uint64
	logger  zerolog.Logger
}

// New creates a game on a size x size board with wallsPerPlayer walls each.
func New(size, wallsPerPlayer int) (*Game, error) {
	s, err := game.New(size, wallsPerPlayer)
	if err != nil {
		return nil, err
	}
	g := &Game{state: s, initial: s, seed: 1, logger: zerolog.Nop()}
	for p := game.Player1; p <= game.Player2; p++ {
		if g.agents[p], err = NewAgent(p, AgentConfig{Strategy: "Human"}, g.seed+uint64(p)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ChooseMove returns the move conf plays in s without touching s.
func ChooseMove(ctx context.Context, s game.State, conf strategy.Config, rng *rand.Rand) (game.Move, error) {
	return strategy.Choose(ctx, s, conf, rng)
}

// State returns a copy of the current position.
func (g *Game) State() game.State {
	g.Lock()
	defer g.Unlock()
	return g.state
}

// SetLogger makes the game and its agents log to l. A new game does not log.
func (g *Game) SetLogger(l zerolog.Logger) {
	g.Lock()
	g.logger = l
	g.Unlock()
}

// Apply plays m for the player to move. On error the game is unchanged.
func (g *Game) Apply(m game.Move) error {
	g.Lock()
	defer g.Unlock()
	if err := g.state.Apply(m); err != nil {
		return err
	}
	g.logger.Debug().
		Str("move", string(m)).
		Int("ply", g.state.Ply()).
		Stringer("next", g.state.Turn()).
		Msg("applied move")
	return nil
}

// Export returns the snapshot of the current position.
func (g *Game) Export() Snapshot {
	return Export(g.State())
}

func (g *Game) LegalPawnMoves() []game.Move { return g.State().LegalPawnMoves() }

func (g *Game) LegalWalls() []game.Move { return g.State().LegalWalls() }

// CheckWin reports whether m is legal and wins the game for the player to move.
func (g *Game) CheckWin(m game.Move) bool { return g.State().CheckWin(m) }

// SetStrategy assigns a strategy and an opening to p, both by name. Unknown names fail with
// strategy.ErrUnknownStrategy and leave the previous agent in place.
func (g *Game) SetStrategy(p game.Player, strategyName, openingName string) error {
	if p != game.Player1 && p != game.Player2 {
		return errors.Wrapf(game.ErrInvalidConfig, "player %d", p)
	}
	a, err := NewAgent(p, AgentConfig{Strategy: strategyName, Opening: openingName}, g.seed+uint64(p))
	if err != nil {
		return err
	}
	g.Lock()
	defer g.Unlock()
	g.agents[p] = a
	g.logger.Debug().Stringer("player", p).Str("strategy", strategyName).Str("opening", openingName).Msg("set strategy")
	return nil
}

// Agent returns the agent playing p.
func (g *Game) Agent(p game.Player) *Agent {
	g.Lock()
	defer g.Unlock()
	return g.agents[p]
}

// AIMove asks the agent of the player to move for a move. The move is not applied. Human players
// get strategy.ErrHumanPlayer.
func (g *Game) AIMove(ctx context.Context) (game.Move, error) {
	g.Lock()
	s, a, l := g.state, g.agents[g.state.Turn()], g.logger
	g.Unlock()
	if a.IsHuman() {
		return game.ResignMove, strategy.ErrHumanPlayer
	}
	// the lock is not held while searching, so keep the agent to itself
	a.Lock()
	defer a.Unlock()
	return a.Search(l.WithContext(ctx), s)
}

// Step lets the agent of the player to move play one move.
func (g *Game) Step(ctx context.Context) (game.Move, error) {
	m, err := g.AIMove(ctx)
	if err != nil {
		return m, err
	}
	return m, g.Apply(m)
}

// Reset starts a new game with the same board, walls and agents.
func (g *Game) Reset() {
	g.Lock()
	defer g.Unlock()
	g.state = g.initial
	for _, a := range g.agents {
		a.Reset()
	}
}
