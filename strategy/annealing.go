package strategy

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/heuristic"
)

// annealer walks the legal moves of s. A move is scored by the heuristic value left after the
// opponent's best reply.
type annealer struct {
	s      game.State
	me     game.Player
	all    []game.Action
	legal  map[int32]game.Action
	pawns  []game.Action
	scores map[int32]float64

	// walk is the current move after every step, for inspection.
	walk []game.Action
}

func newAnnealer(s game.State) *annealer {
	an := &annealer{
		s:      s,
		me:     s.Turn(),
		all:    s.LegalActions(),
		legal:  make(map[int32]game.Action),
		pawns:  s.PawnMoves(),
		scores: make(map[int32]float64),
	}
	for _, a := range an.all {
		an.legal[a.Index()] = a
	}
	return an
}

func (an *annealer) score(a game.Action) float64 {
	if v, ok := an.scores[a.Index()]; ok {
		return v
	}
	v := an.reply(an.s.Play(a))
	an.scores[a.Index()] = v
	return v
}

// reply returns the lowest value the opponent can leave after s.
func (an *annealer) reply(s game.State) float64 {
	if w, over := s.Winner(); over {
		if w == an.me {
			return winScore
		}
		return -winScore
	}
	worst := math.Inf(1)
	for _, r := range s.LegalActions() {
		next := s.Play(r)
		var v float64
		if next.Over() {
			v = -winScore
		} else {
			v = heuristic.Evaluate(next, an.me)
		}
		if v < worst {
			worst = v
		}
	}
	return worst
}

// addWall appends w to list when it is a legal move.
func (an *annealer) addWall(list []game.Action, w game.Wall) []game.Action {
	if !w.Valid() {
		return list
	}
	if a, ok := an.legal[game.PlaceWall(w).Index()]; ok {
		list = append(list, a)
	}
	return list
}

// neighbours lists the moves one small change away from a. A wall may slide one slot or turn
// around its centre, and may give way to a pawn move. A pawn move may switch to another pawn
// move or to a wall against the opponent's pawn.
func (an *annealer) neighbours(a game.Action) []game.Action {
	var retVal []game.Action
	for _, p := range an.pawns {
		if p != a {
			retVal = append(retVal, p)
		}
	}
	if a.Kind == game.WallAction {
		w := a.Wall
		for _, d := range [...]game.Pos{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}} {
			retVal = an.addWall(retVal, game.Wall{Pos: game.Pos{Row: w.Row + d.Row, Col: w.Col + d.Col}, Orient: w.Orient})
		}
		flip := game.Horizontal
		if w.Orient == game.Horizontal {
			flip = game.Vertical
		}
		return an.addWall(retVal, game.Wall{Pos: w.Pos, Orient: flip})
	}
	// walls touching one of the four sides of the opponent
	opp := an.s.Pawn(an.me.Opponent())
	for r := opp.Row; r <= opp.Row+1; r++ {
		for c := opp.Col - 1; c <= opp.Col; c++ {
			for _, o := range [...]game.Orient{game.Horizontal, game.Vertical} {
				retVal = an.addWall(retVal, game.Wall{Pos: game.Pos{Row: r, Col: c}, Orient: o})
			}
		}
	}
	return retVal
}

// run anneals from a random legal move. Each global step holds the temperature for
// LocalIterations proposals and then cools it by Cooling. A worse neighbour is accepted with
// probability exp(-delta/T), delta counted in steps of path distance. The best move seen is
// returned.
func (an *annealer) run(ctx context.Context, conf Config, rng *rand.Rand) game.Action {
	unit := heuristic.DefaultWeights().Distance

	cur := an.all[rng.Intn(len(an.all))]
	curScore := an.score(cur)
	best, bestScore := cur, curScore
	t := conf.Temperature

	for g := 0; g < conf.GlobalIterations; g++ {
		for l := 0; l < conf.LocalIterations; l++ {
			if ctx.Err() != nil {
				return best
			}
			near := an.neighbours(cur)
			if len(near) == 0 {
				return best
			}
			next := near[rng.Intn(len(near))]
			u := rng.Float64()
			nextScore := an.score(next)
			delta := (curScore - nextScore) / unit
			if delta <= 0 || u < math.Exp(-delta/t) {
				cur, curScore = next, nextScore
			}
			an.walk = append(an.walk, cur)
			if curScore > bestScore {
				best, bestScore = cur, curScore
			}
		}
		t *= conf.Cooling
	}
	return best
}

// anneal picks a move by simulated annealing over the legal moves of s. A winning step is taken
// at once.
func anneal(ctx context.Context, s game.State, conf Config, rng *rand.Rand) game.Action {
	if a, ok := winningStep(s); ok {
		return a
	}
	return newAnnealer(s).run(ctx, conf, rng)
}
