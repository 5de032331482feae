package mcts

import (
	"context"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/heuristic"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Every iteration is the classic pipeline:
	SELECT down the tree with UCB1, EXPAND one untried action, SIMULATE a playout,
	BACKPROPAGATE the result along the path.
*/

const (
	win  float32 = 1
	draw float32 = 0.5
	loss float32 = 0
)

// Search runs a fresh tree on s and returns the chosen move.
func Search(ctx context.Context, s game.State, conf Config, rng *rand.Rand) (game.Move, error) {
	return New(conf, rng).Search(ctx, s)
}

// Search explores s until the simulation budget, the timeout or ctx runs out, and returns the
// most visited move at the root. The budget is checked between iterations only.
func (t *Tree) Search(ctx context.Context, s game.State) (retVal game.Move, err error) {
	if !t.IsValid() {
		return game.ResignMove, errors.Errorf("invalid MCTS config %+v", t.Config)
	}
	t.Reset()
	pawns := s.PawnMoves()
	if len(pawns) == 0 {
		return game.ResignMove, errors.Wrapf(game.ErrNoMove, "state %v", s)
	}
	for _, a := range pawns {
		if a.To.Row == s.Turn().GoalRow() {
			return a.Move(), nil
		}
	}

	start := time.Now()
	var deadline time.Time
	if t.Timeout > 0 {
		deadline = start.Add(t.Timeout)
	}

	t.root = t.New(-1)
	var iter int
	for ; t.Simulations <= 0 || iter < t.Simulations; iter++ {
		if ctx.Err() != nil {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		t.iterate(s)
	}

	best := t.bestMove()
	if !best.isValid() {
		// not a single iteration ran
		a, _ := heuristic.ShortestStep(s)
		return a.Move(), nil
	}
	retVal = t.nodeFromNaughty(best).Action().Move()
	zerolog.Ctx(ctx).Debug().
		Int("iterations", iter).
		Int("playouts", t.playouts).
		Int("nodes", t.Nodes()).
		Dur("took", time.Since(start)).
		Str("best", string(retVal)).
		Msg("mcts search")
	return retVal, nil
}

// iterate runs one select, expand, simulate and backpropagate pass from the root state s.
func (t *Tree) iterate(s game.State) {
	t.path = append(t.path[:0], t.root)
	n := t.root
	current := s
	for !current.Over() {
		if !t.nodeFromNaughty(n).expanded {
			t.expand(n, current)
		}
		if len(t.untried[n]) > 0 {
			move := t.popUntried(n)
			kid := t.New(move)
			t.children[n] = append(t.children[n], kid)
			current = current.Play(game.ActionAt(move))
			t.path = append(t.path, kid)
			break
		}
		if len(t.children[n]) == 0 {
			break
		}
		n = t.selectChild(n)
		current = current.Play(t.nodeFromNaughty(n).Action())
		t.path = append(t.path, n)
	}

	winner, decided := t.rollout(current)
	t.playouts++

	// the node at depth d was entered by a move of the root player when d is odd
	rootPlayer := s.Turn()
	for depth, id := range t.path {
		mover := rootPlayer
		if depth%2 == 0 {
			mover = rootPlayer.Opponent()
		}
		reward := draw
		if decided {
			reward = loss
			if winner == mover {
				reward = win
			}
		}
		t.nodeFromNaughty(id).Update(reward)
	}
}

// selectChild picks the child of n with the highest UCB1 value. Unvisited children come first.
func (t *Tree) selectChild(n naughty) naughty {
	parent := t.nodeFromNaughty(n)
	logN := math32.Log(float32(parent.visits))

	best := nilNode
	bestValue := math32.Inf(-1)
	for _, kid := range t.children[n] {
		child := t.nodeFromNaughty(kid)
		if child.visits == 0 {
			return kid
		}
		ucb := child.Value() + t.Exploration*math32.Sqrt(logN/float32(child.visits))
		if ucb > bestValue {
			bestValue = ucb
			best = kid
		}
	}
	return best
}

// rollout plays s out with the playout policy. It reports whether the game was decided within
// MaxRolloutPlies.
func (t *Tree) rollout(s game.State) (winner game.Player, decided bool) {
	for ply := 0; ply < t.MaxRolloutPlies; ply++ {
		if w, over := s.Winner(); over {
			return w, true
		}
		a, ok := t.rolloutAction(s)
		if !ok {
			return game.Player1, false
		}
		s = s.Play(a)
	}
	return s.Winner()
}

// rolloutAction walks the shortest path when the mover is not behind or has no walls left, and
// otherwise picks uniformly among pawn moves and legal walls. Walls are drawn by rejection so
// the full wall list is never generated inside a playout.
func (t *Tree) rolloutAction(s game.State) (game.Action, bool) {
	me := s.Turn()
	if s.WallsLeft(me) == 0 || s.Distance(me) <= s.Distance(me.Opponent()) {
		return heuristic.ShortestStep(s)
	}
	pawns := s.PawnMoves()
	if len(pawns) == 0 {
		return game.Action{}, false
	}
	slots := len(pawns) + game.ActionSpace - game.Size*game.Size
	for try := 0; try < 8; try++ {
		k := t.rand.Intn(slots)
		if k < len(pawns) {
			return pawns[k], true
		}
		a := game.ActionAt(int32(game.Size*game.Size + k - len(pawns)))
		if s.CanPlace(a.Wall) {
			return a, true
		}
	}
	return pawns[t.rand.Intn(len(pawns))], true
}

// bestMove returns the most visited child of the root, the earliest expanded one on ties.
func (t *Tree) bestMove() naughty {
	children := append([]naughty(nil), t.children[t.root]...)
	if len(children) == 0 {
		return nilNode
	}
	sortByVisits(children, t)
	return children[0]
}
