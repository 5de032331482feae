package strategy

import (
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/heuristic"
)

func chooseRandom(s game.State, rng *rand.Rand) game.Action {
	actions := s.LegalActions()
	return actions[rng.Intn(len(actions))]
}

func shortestPath(s game.State) game.Action {
	a, _ := heuristic.ShortestStep(s)
	return a
}

// winningStep returns a pawn move onto the goal row, if there is one.
func winningStep(s game.State) (game.Action, bool) {
	for _, a := range s.PawnMoves() {
		if a.To.Row == s.Turn().GoalRow() {
			return a, true
		}
	}
	return game.Action{}, false
}

// defensive places, with probability p, the wall that lengthens the opponent's path the most.
// Otherwise, or when no wall lengthens it, it steps along the shortest path. A step onto the
// goal row is always taken, before p is rolled.
func defensive(s game.State, p float64, rng *rand.Rand) game.Action {
	if a, ok := winningStep(s); ok {
		return a
	}
	if s.WallsLeft(s.Turn()) > 0 && rng.Float64() < p {
		if a, ok := bestWall(s); ok {
			return a
		}
	}
	return shortestPath(s)
}

// bestWall returns the legal wall that increases the opponent's distance the most. Ties go to
// the wall nearest the mover's home row, then to the first in generation order.
func bestWall(s game.State) (game.Action, bool) {
	me := s.Turn()
	opp := me.Opponent()
	base := s.Distance(opp)

	var best game.Action
	bestGain, bestSide := 0, game.Size
	for _, a := range s.WallMoves() {
		gain := s.Play(a).Distance(opp) - base
		side := abs(a.Wall.Row - me.HomeRow())
		if gain > bestGain || (gain == bestGain && gain > 0 && side < bestSide) {
			best, bestGain, bestSide = a, gain, side
		}
	}
	return best, bestGain > 0
}

// balanced hands the move to a Defensive that always walls with probability q, otherwise to
// ShortestPath.
func balanced(s game.State, q float64, rng *rand.Rand) game.Action {
	if s.WallsLeft(s.Turn()) > 0 && rng.Float64() < q {
		return defensive(s, 1, rng)
	}
	return shortestPath(s)
}

// adaptive races while it is not behind and defends otherwise.
func adaptive(s game.State, rng *rand.Rand) game.Action {
	me := s.Turn()
	if s.Distance(me) <= s.Distance(me.Opponent()) {
		return shortestPath(s)
	}
	return defensive(s, DefaultWallProbability, rng)
}

// mirror answers with the point reflection of the opponent's last move when it is legal, and
// plays Adaptive otherwise.
func mirror(s game.State, rng *rand.Rand) game.Action {
	if last, ok := s.LastAction(); ok {
		if m := last.Mirror(); s.Allows(m) {
			return m
		}
	}
	return adaptive(s, rng)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
