// Package heuristic scores positions for the search strategies.
package heuristic

import "github.com/quoridorai/quoridor/game"

// Weights of the evaluation terms.
type Weights struct {
	Distance float64 `json:"distance"` // per step of goal distance difference
	Attack   float64 `json:"attack"`   // how close a pawn is to entering the next row
	Mobility float64 `json:"mobility"` // per step of next-row distance difference
}

// DefaultWeights lets the goal distance difference dominate; the two row terms separate
// positions that tie on it.
func DefaultWeights() Weights {
	return Weights{
		Distance: 1000,
		Attack:   14.45,
		Mobility: 6.52,
	}
}

// Evaluate scores s from p's point of view using DefaultWeights.
func Evaluate(s game.State, p game.Player) float64 {
	return DefaultWeights().Evaluate(s, p)
}

// Evaluate scores s from p's point of view. Higher is better for p. The score is antisymmetric:
// Evaluate(s, p) == -Evaluate(s, p.Opponent()) and Evaluate(s.Mirror(), p) == -Evaluate(s, p).
func (w Weights) Evaluate(s game.State, p game.Player) float64 {
	ownGoal, ownNext := s.PathInfo(p)
	oppGoal, oppNext := s.PathInfo(p.Opponent())
	return w.terms(ownGoal, ownNext) - w.terms(oppGoal, oppNext)
}

// terms is one side's contribution. Keeping both sides in the same expression makes the
// score exactly antisymmetric in floating point.
func (w Weights) terms(toGoal, toNext int) float64 {
	return -w.Distance*float64(toGoal) + w.Attack/(float64(toNext)+0.1) - w.Mobility*float64(toNext)
}
