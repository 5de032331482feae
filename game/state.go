package game

import (
	"github.com/pkg/errors"
)

// Move encodes a move in algebraic notation: "e2" moves a pawn, "e3h" and "e3v" place walls.
type Move string

const (
	Size         = 9
	DefaultWalls = 10
	ResignMove   = Move("resign")
)

// Player identifies one of the two sides. Player1 starts on e1 and races to row 9.
type Player int8

const (
	Player1 Player = iota
	Player2
)

func (p Player) Opponent() Player { return p ^ 1 }

// Number is the 1-based player number used in notation and exports.
func (p Player) Number() int { return int(p) + 1 }

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	}
	return "UNKNOWN PLAYER"
}

// GoalRow is the array row p has to reach.
func (p Player) GoalRow() int {
	if p == Player1 {
		return 0
	}
	return Size - 1
}

// HomeRow is the array row p starts on.
func (p Player) HomeRow() int { return Size - 1 - p.GoalRow() }

// Pos is a square in array coordinates. Row 0 is the top of the board (algebraic row 9).
type Pos struct {
	Row, Col int
}

func (p Pos) OnBoard() bool { return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size }

// Mirror returns the square rotated by 180 degrees around the centre of the board.
func (p Pos) Mirror() Pos { return Pos{Size - 1 - p.Row, Size - 1 - p.Col} }

func (p Pos) add(d Pos) Pos { return Pos{p.Row + d.Row, p.Col + d.Col} }

func (p Pos) index() int { return p.Row*Size + p.Col }

func posOf(i int) Pos { return Pos{i / Size, i % Size} }

// State is a snapshot of a game. It is a value: copies are independent, which is how search
// explores successors without touching the live game.
type State struct {
	pawns   [2]Pos
	walls   [2]int
	perSide int
	hwalls  bitset // keyed by the reference square of the wall
	vwalls  bitset
	board   board
	turn    Player
	ply     int
	last    Action
	hasLast bool
}

// New returns the initial position of a game on a board of the given size where each player
// holds wallsPerPlayer walls. Only the 9x9 board is supported.
func New(size, wallsPerPlayer int) (State, error) {
	if size != Size {
		return State{}, errors.Wrapf(ErrInvalidConfig, "board size %d, only %d is supported", size, Size)
	}
	if wallsPerPlayer < 0 || wallsPerPlayer > DefaultWalls {
		return State{}, errors.Wrapf(ErrInvalidConfig, "%d walls per player, want 0..%d", wallsPerPlayer, DefaultWalls)
	}
	mid := Size / 2
	return State{
		pawns:   [2]Pos{{Size - 1, mid}, {0, mid}},
		walls:   [2]int{wallsPerPlayer, wallsPerPlayer},
		perSide: wallsPerPlayer,
	}, nil
}

// NewGame returns the standard starting position with ten walls each.
func NewGame() State {
	s, _ := New(Size, DefaultWalls)
	return s
}

// Turn returns the player to move.
func (s State) Turn() Player { return s.turn }

// Pawn returns the square of p's pawn.
func (s State) Pawn(p Player) Pos { return s.pawns[p] }

// WallsLeft returns how many walls p may still place.
func (s State) WallsLeft(p Player) int { return s.walls[p] }

// WallsPerPlayer returns the number of walls each player started with.
func (s State) WallsPerPlayer() int { return s.perSide }

// Ply returns the number of moves applied so far.
func (s State) Ply() int { return s.ply }

// LastAction returns the most recently applied move, which is always the opponent's of the
// player to move.
func (s State) LastAction() (Action, bool) { return s.last, s.hasLast }

// LastMove is LastAction in notation, empty before the first move.
func (s State) LastMove() Move {
	if !s.hasLast {
		return ""
	}
	return s.last.Move()
}

// Walls returns every placed wall: horizontal walls first, each group in notation order.
func (s State) Walls() []Wall {
	return append(s.HWalls(), s.VWalls()...)
}

// HWalls returns the horizontal walls ordered by algebraic row, then column.
func (s State) HWalls() []Wall { return s.collect(s.hwalls, Horizontal) }

// VWalls returns the vertical walls ordered by algebraic row, then column.
func (s State) VWalls() []Wall { return s.collect(s.vwalls, Vertical) }

func (s State) collect(set bitset, o Orient) []Wall {
	retVal := make([]Wall, 0, set.count())
	for r := Size - 1; r >= 1; r-- {
		for c := 0; c < Size-1; c++ {
			if set.has(r*Size + c) {
				retVal = append(retVal, Wall{Pos{r, c}, o})
			}
		}
	}
	return retVal
}

// Winner returns the player whose pawn stands on its goal row, if any.
func (s State) Winner() (Player, bool) {
	switch {
	case s.pawns[Player1].Row == Player1.GoalRow():
		return Player1, true
	case s.pawns[Player2].Row == Player2.GoalRow():
		return Player2, true
	}
	return Player1, false
}

// Over reports whether the game has ended.
func (s State) Over() bool {
	_, over := s.Winner()
	return over
}

// Play returns the successor state after a. It does not check legality: a must come from
// PawnMoves, WallMoves or LegalActions of s.
func (s State) Play(a Action) State {
	switch a.Kind {
	case PawnAction:
		s.pawns[s.turn] = a.To
	case WallAction:
		s.insert(a.Wall)
		s.walls[s.turn]--
	}
	s.last, s.hasLast = a, true
	s.turn = s.turn.Opponent()
	s.ply++
	return s
}

func (s *State) insert(w Wall) {
	s.board.addWall(w)
	if w.Orient == Horizontal {
		s.hwalls.set(w.index())
	} else {
		s.vwalls.set(w.index())
	}
}

// Apply validates m against the rules and plays it. On error s is left untouched.
func (s *State) Apply(m Move) error {
	a, err := ParseMove(m)
	if err != nil {
		return err
	}
	if err := s.check(a); err != nil {
		return errors.Wrapf(err, "cannot play %s", m)
	}
	*s = s.Play(a)
	return nil
}

// Mirror returns the position rotated by 180 degrees with the roles of the players swapped: each
// pawn takes the mirrored square of the other, and the wall counts and turn are exchanged.
func (s State) Mirror() State {
	m := State{
		pawns:   [2]Pos{s.pawns[Player2].Mirror(), s.pawns[Player1].Mirror()},
		walls:   [2]int{s.walls[Player2], s.walls[Player1]},
		perSide: s.perSide,
		turn:    s.turn.Opponent(),
		ply:     s.ply,
		hasLast: s.hasLast,
		last:    s.last.Mirror(),
	}
	for _, w := range s.Walls() {
		m.insert(w.Mirror())
	}
	return m
}
