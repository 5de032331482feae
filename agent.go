package quoridor

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/opening"
	"github.com/quoridorai/quoridor/strategy"
)

// An Agent is a player, AI or Human. It plays its opening book first and its strategy after.
type Agent struct {
	Player   game.Player
	Strategy strategy.Config
	Opening  opening.Opening

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name   string
	cursor *opening.Cursor
	rand   *rand.Rand
}

// NewAgent builds the agent playing p from conf, drawing its randomness from a generator seeded
// with seed.
func NewAgent(p game.Player, conf AgentConfig, seed uint64) (*Agent, error) {
	sc, err := strategy.Parse(conf.Strategy)
	if err != nil {
		return nil, err
	}
	o, err := opening.Lookup(conf.Opening)
	if err != nil {
		return nil, err
	}
	return &Agent{
		Player:   p,
		Strategy: sc,
		Opening:  o,
		name:     sc.Name(),
		cursor:   opening.NewCursor(o, p),
		rand:     rand.New(rand.NewSource(seed)),
	}, nil
}

// Name returns the strategy name of the agent.
func (a *Agent) Name() string { return a.name }

// IsHuman reports whether moves have to come from outside.
func (a *Agent) IsHuman() bool { return a.Strategy.Kind == strategy.Human }

// Search returns the move the agent plays in s: the next book move while the opening lasts,
// the strategy's choice after that. s is not modified.
func (a *Agent) Search(ctx context.Context, s game.State) (game.Move, error) {
	if s.Turn() != a.Player {
		return game.ResignMove, errors.Errorf("%v cannot move for %v", a.Player, s.Turn())
	}
	inBook := !a.cursor.Done()
	if m, ok := a.cursor.Next(s); ok {
		zerolog.Ctx(ctx).Debug().Str("opening", a.Opening.Name).Str("move", string(m)).Msg("book move")
		return m, nil
	}
	if inBook {
		zerolog.Ctx(ctx).Debug().
			Str("opening", a.Opening.Name).
			Stringer("player", a.Player).
			Stringer("state", s).
			Msg("opening over, handing over to the strategy")
	}
	return strategy.Choose(ctx, s, a.Strategy, a.rand)
}

// Reset rewinds the opening book for a new game. Statistics are kept.
func (a *Agent) Reset() {
	a.Lock()
	a.cursor.Reset()
	a.Unlock()
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
