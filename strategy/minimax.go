package strategy

import (
	"math"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/heuristic"
)

// winScore is the value of a won position, less one per ply so that faster wins rank higher.
const winScore = 1e6

// minimax searches depth plies with alpha-beta pruning and returns the best action for the
// player to move and its value from that player's point of view.
func minimax(s game.State, depth int) (game.Action, float64) {
	if a, ok := winningStep(s); ok {
		return a, winScore - 1
	}
	alpha, beta := math.Inf(-1), math.Inf(1)
	var best game.Action
	found := false
	for _, a := range s.LegalActions() {
		v := -negamax(s.Play(a), depth-1, 1, -beta, -alpha)
		if !found || v > alpha {
			best, alpha, found = a, v, true
		}
	}
	return best, alpha
}

// negamax returns the value of s for the player to move.
func negamax(s game.State, depth, ply int, alpha, beta float64) float64 {
	if _, over := s.Winner(); over {
		// the player who just moved has won
		return -(winScore - float64(ply))
	}
	if depth <= 0 {
		return heuristic.Evaluate(s, s.Turn())
	}
	for _, a := range s.LegalActions() {
		v := -negamax(s.Play(a), depth-1, ply+1, -beta, -alpha)
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	return alpha
}

// MinimaxScore is the alpha-beta value of s searched depth plies deep, from p's point of view.
func MinimaxScore(s game.State, depth int, p game.Player) float64 {
	v := negamax(s, depth, 0, math.Inf(-1), math.Inf(1))
	if s.Turn() != p {
		return -v
	}
	return v
}
