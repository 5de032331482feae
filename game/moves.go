package game

import "github.com/pkg/errors"

// pawnTargets lists the squares the active pawn may move to: each open neighbour, the square
// behind the opponent when the opponent is the neighbour, or the squares beside the opponent
// when that straight jump is blocked.
func (s State) pawnTargets() []Pos {
	if s.Over() {
		return nil
	}
	me, opp := s.pawns[s.turn], s.pawns[s.turn.Opponent()]
	retVal := make([]Pos, 0, 5)
	for d := north; d <= east; d++ {
		if s.board.blocked(me, d) {
			continue
		}
		n := me.add(deltas[d])
		if n != opp {
			retVal = append(retVal, n)
			continue
		}
		if !s.board.blocked(n, d) {
			retVal = append(retVal, n.add(deltas[d]))
			continue
		}
		for _, side := range d.sides() {
			if !s.board.blocked(n, side) {
				retVal = append(retVal, n.add(deltas[side]))
			}
		}
	}
	return retVal
}

// PawnMoves returns the legal pawn moves of the player to move, in the order north, south, west,
// east. It is empty once the game is over.
func (s State) PawnMoves() []Action {
	targets := s.pawnTargets()
	retVal := make([]Action, len(targets))
	for i, t := range targets {
		retVal[i] = PawnTo(t)
	}
	return retVal
}

// WallMoves returns the legal wall placements of the player to move, ordered by algebraic row,
// then column, horizontal before vertical.
func (s State) WallMoves() []Action {
	if s.Over() || s.walls[s.turn] == 0 {
		return nil
	}
	// a wall that leaves both current paths intact cannot cut anyone off
	path1, ok1 := s.board.pathEdges(s.pawns[Player1], Player1.GoalRow())
	path2, ok2 := s.board.pathEdges(s.pawns[Player2], Player2.GoalRow())
	full := !ok1 || !ok2
	var retVal []Action
	for r := Size - 1; r >= 1; r-- {
		for c := 0; c < Size-1; c++ {
			for _, o := range [...]Orient{Horizontal, Vertical} {
				w := Wall{Pos{r, c}, o}
				if s.conflicts(w) {
					continue
				}
				if (full || path1.cuts(w) || path2.cuts(w)) && !s.keepsPaths(w) {
					continue
				}
				retVal = append(retVal, PlaceWall(w))
			}
		}
	}
	return retVal
}

// LegalActions returns PawnMoves followed by WallMoves.
func (s State) LegalActions() []Action {
	return append(s.PawnMoves(), s.WallMoves()...)
}

// LegalPawnMoves is PawnMoves in notation.
func (s State) LegalPawnMoves() []Move { return toMoves(s.PawnMoves()) }

// LegalWalls is WallMoves in notation.
func (s State) LegalWalls() []Move { return toMoves(s.WallMoves()) }

func toMoves(as []Action) []Move {
	retVal := make([]Move, len(as))
	for i, a := range as {
		retVal[i] = a.Move()
	}
	return retVal
}

// conflicts reports whether w overlaps or crosses a placed wall.
func (s State) conflicts(w Wall) bool {
	i := w.index()
	if w.Orient == Horizontal {
		return s.hwalls.has(i) || s.vwalls.has(i) ||
			(w.Col > 0 && s.hwalls.has(i-1)) ||
			(w.Col < Size-2 && s.hwalls.has(i+1))
	}
	return s.vwalls.has(i) || s.hwalls.has(i) ||
		(w.Row > 1 && s.vwalls.has(i-Size)) ||
		(w.Row < Size-1 && s.vwalls.has(i+Size))
}

// canPlace checks w for the player to move against the wall count, the placed walls and the
// requirement that both pawns keep a path to their goal rows.
func (s State) canPlace(w Wall) error {
	if !w.Valid() {
		return errors.Wrapf(ErrIllegalMove, "wall %v does not fit on the board", w)
	}
	if s.walls[s.turn] == 0 {
		return errors.Wrapf(ErrNoWallsRemaining, "%v has no walls left", s.turn)
	}
	if s.conflicts(w) {
		return errors.Wrapf(ErrIllegalMove, "wall %v overlaps or crosses another wall", w)
	}
	if !s.keepsPaths(w) {
		return errors.Wrapf(ErrIllegalMove, "wall %v cuts a pawn off from its goal", w)
	}
	return nil
}

// keepsPaths reports whether both pawns can still reach their goal rows once w is in place.
func (s State) keepsPaths(w Wall) bool {
	b := s.board
	b.addWall(w)
	return b.reaches(s.pawns[Player1], Player1.GoalRow()) && b.reaches(s.pawns[Player2], Player2.GoalRow())
}

// CanPlace reports whether the player to move may place w.
func (s State) CanPlace(w Wall) bool {
	return !s.Over() && s.canPlace(w) == nil
}

func (s State) check(a Action) error {
	if s.Over() {
		return errors.Wrap(ErrIllegalMove, "the game is over")
	}
	if a.Kind == WallAction {
		return s.canPlace(a.Wall)
	}
	for _, t := range s.pawnTargets() {
		if t == a.To {
			return nil
		}
	}
	return errors.Wrapf(ErrIllegalMove, "%v cannot move to %v", s.turn, a.To)
}

// Allows reports whether the player to move may play a.
func (s State) Allows(a Action) bool { return s.check(a) == nil }

// IsLegal reports whether m parses and may be played by the player to move.
func (s State) IsLegal(m Move) bool {
	a, err := ParseMove(m)
	return err == nil && s.check(a) == nil
}

// CheckWin reports whether playing m is legal and puts the mover's pawn on its goal row.
func (s State) CheckWin(m Move) bool {
	a, err := ParseMove(m)
	if err != nil || a.Kind != PawnAction || s.check(a) != nil {
		return false
	}
	return a.To.Row == s.turn.GoalRow()
}
