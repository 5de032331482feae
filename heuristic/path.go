package heuristic

import "github.com/quoridorai/quoridor/game"

// ShortestStep returns the pawn move that leaves the player to move closest to its goal row.
// A step onto the goal row is taken at once; ties go to the first move in generation order.
// It reports false only when there is no pawn move, i.e. the game is over.
func ShortestStep(s game.State) (game.Action, bool) {
	me := s.Turn()
	var best game.Action
	bestDist, found := game.NoPath+1, false
	for _, a := range s.PawnMoves() {
		if a.To.Row == me.GoalRow() {
			return a, true
		}
		if d := s.Play(a).Distance(me); d < bestDist {
			best, bestDist, found = a, d, true
		}
	}
	return best, found
}
