package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Orient is the orientation of a wall, encoded as the notation suffix.
type Orient byte

const (
	Horizontal Orient = 'h'
	Vertical   Orient = 'v'
)

// Wall is a wall two squares long. Pos is the square at its bottom left: a horizontal wall lies
// along the top edge of Pos and the square to its right, a vertical wall along the right edge of
// Pos and the square above it.
type Wall struct {
	Pos
	Orient Orient
}

// Valid reports whether the wall lies entirely on the board.
func (w Wall) Valid() bool {
	return w.Row >= 1 && w.Row < Size && w.Col >= 0 && w.Col < Size-1 &&
		(w.Orient == Horizontal || w.Orient == Vertical)
}

// Mirror returns the wall rotated by 180 degrees around the centre of the board.
func (w Wall) Mirror() Wall { return Wall{Pos{Size - w.Row, Size - 2 - w.Col}, w.Orient} }

func (w Wall) String() string { return w.Pos.String() + string(w.Orient) }

// Move returns the wall in notation.
func (w Wall) Move() Move { return Move(w.String()) }

// ActionKind tells a pawn step from a wall placement.
type ActionKind uint8

const (
	PawnAction ActionKind = iota
	WallAction
)

// Action is a parsed Move.
type Action struct {
	Kind ActionKind
	To   Pos  // pawn target
	Wall Wall // wall placement
}

// PawnTo is the action moving the active pawn to p.
func PawnTo(p Pos) Action { return Action{Kind: PawnAction, To: p} }

// PlaceWall is the action placing w.
func PlaceWall(w Wall) Action { return Action{Kind: WallAction, Wall: w} }

// Move formats the action in notation.
func (a Action) Move() Move {
	if a.Kind == WallAction {
		return a.Wall.Move()
	}
	return Move(a.To.String())
}

// Mirror returns the action rotated by 180 degrees around the centre of the board.
func (a Action) Mirror() Action {
	if a.Kind == WallAction {
		return PlaceWall(a.Wall.Mirror())
	}
	return PawnTo(a.To.Mirror())
}

func (a Action) String() string { return string(a.Move()) }

// String formats a square in notation: column letter, then row number counted from the bottom.
func (p Pos) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, Size-p.Row)
}

// ParsePos parses a square such as "e1".
func ParsePos(s string) (Pos, error) {
	if len(s) != 2 {
		return Pos{}, errors.Wrapf(ErrMalformedNotation, "square %q", s)
	}
	col := int(s[0]) - 'a'
	n := int(s[1]) - '0'
	p := Pos{Row: Size - n, Col: col}
	if n < 1 || n > Size || !p.OnBoard() {
		return Pos{}, errors.Wrapf(ErrMalformedNotation, "square %q is off the board", s)
	}
	return p, nil
}

// ParseMove parses a pawn move ("e2") or a wall placement ("e3h", "e3v").
func ParseMove(m Move) (Action, error) {
	s := string(m)
	switch len(s) {
	case 2:
		p, err := ParsePos(s)
		if err != nil {
			return Action{}, err
		}
		return PawnTo(p), nil
	case 3:
		p, err := ParsePos(s[:2])
		if err != nil {
			return Action{}, err
		}
		w := Wall{p, Orient(s[2])}
		if w.Orient != Horizontal && w.Orient != Vertical {
			return Action{}, errors.Wrapf(ErrMalformedNotation, "wall orientation in %q", s)
		}
		if !w.Valid() {
			// well formed, but the wall would stick out of the board
			return Action{}, errors.Wrapf(ErrIllegalMove, "wall %q does not fit on the board", s)
		}
		return PlaceWall(w), nil
	}
	return Action{}, errors.Wrapf(ErrMalformedNotation, "move %q", s)
}

// String formats the state as "<hwalls> / <vwalls> / <p1> <p2> / <w1> <w2> / <active>", walls
// written as concatenated reference squares, e.g. "e6 /  / e5 e6 / 10 9 / 1".
func (s State) String() string {
	var h, v strings.Builder
	for _, w := range s.HWalls() {
		h.WriteString(w.Pos.String())
	}
	for _, w := range s.VWalls() {
		v.WriteString(w.Pos.String())
	}
	return fmt.Sprintf("%s / %s / %v %v / %d %d / %d",
		h.String(), v.String(), s.pawns[Player1], s.pawns[Player2],
		s.walls[Player1], s.walls[Player2], s.turn.Number())
}

// ParseState parses the format produced by State.String. Walls are inserted without the
// path check; overlapping walls, shared squares and out of range counts are rejected.
func ParseState(str string) (State, error) {
	parts := strings.Split(str, "/")
	if len(parts) != 5 {
		return State{}, errors.Wrapf(ErrMalformedNotation, "state %q has %d sections, want 5", str, len(parts))
	}
	s := NewGame()
	for i, o := range []Orient{Horizontal, Vertical} {
		sq := strings.TrimSpace(parts[i])
		if len(sq)%2 != 0 {
			return State{}, errors.Wrapf(ErrMalformedNotation, "wall list %q", sq)
		}
		for j := 0; j < len(sq); j += 2 {
			p, err := ParsePos(sq[j : j+2])
			if err != nil {
				return State{}, err
			}
			w := Wall{p, o}
			if !w.Valid() {
				return State{}, errors.Wrapf(ErrMalformedNotation, "wall %v does not fit on the board", w)
			}
			if s.conflicts(w) {
				return State{}, errors.Wrapf(ErrIllegalMove, "wall %v overlaps another wall", w)
			}
			s.insert(w)
		}
	}

	pawns := strings.Fields(parts[2])
	if len(pawns) != 2 {
		return State{}, errors.Wrapf(ErrMalformedNotation, "pawns %q", parts[2])
	}
	for i, f := range pawns {
		p, err := ParsePos(f)
		if err != nil {
			return State{}, err
		}
		s.pawns[i] = p
	}
	if s.pawns[Player1] == s.pawns[Player2] {
		return State{}, errors.Wrapf(ErrIllegalMove, "both pawns on %v", s.pawns[Player1])
	}

	counts := strings.Fields(parts[3])
	if len(counts) != 2 {
		return State{}, errors.Wrapf(ErrMalformedNotation, "wall counts %q", parts[3])
	}
	for i, f := range counts {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > DefaultWalls {
			return State{}, errors.Wrapf(ErrMalformedNotation, "wall count %q", f)
		}
		s.walls[i] = n
	}

	switch strings.TrimSpace(parts[4]) {
	case "1":
		s.turn = Player1
	case "2":
		s.turn = Player2
	default:
		return State{}, errors.Wrapf(ErrMalformedNotation, "active player %q", parts[4])
	}
	return s, nil
}

// ActionSpace is the number of distinct actions: one per square and one per wall slot and
// orientation.
const ActionSpace = cells + 2*(Size-1)*(Size-1)

// Index returns a dense index of a in [0, ActionSpace).
func (a Action) Index() int32 {
	if a.Kind == PawnAction {
		return int32(a.To.index())
	}
	i := cells + 2*((a.Wall.Row-1)*(Size-1)+a.Wall.Col)
	if a.Wall.Orient == Vertical {
		i++
	}
	return int32(i)
}

// ActionAt is the inverse of Action.Index.
func ActionAt(i int32) Action {
	if i < cells {
		return PawnTo(posOf(int(i)))
	}
	k := int(i) - cells
	o := Horizontal
	if k%2 == 1 {
		o = Vertical
	}
	k /= 2
	return PlaceWall(Wall{Pos{k/(Size-1) + 1, k % (Size - 1)}, o})
}
