package game

import "math/bits"

const cells = Size * Size

// bitset is a set of cell indices (row*Size + col).
type bitset [2]uint64

func (b bitset) has(i int) bool { return b[i>>6]&(1<<uint(i&63)) != 0 }

func (b *bitset) set(i int) { b[i>>6] |= 1 << uint(i&63) }

func (b bitset) count() int { return bits.OnesCount64(b[0]) + bits.OnesCount64(b[1]) }

type direction uint8

const (
	north direction = iota
	south
	west
	east
)

var deltas = [...]Pos{
	north: {-1, 0},
	south: {1, 0},
	west:  {0, -1},
	east:  {0, 1},
}

// sides returns the two directions orthogonal to d.
func (d direction) sides() [2]direction {
	if d == north || d == south {
		return [2]direction{west, east}
	}
	return [2]direction{north, south}
}

// board is the blocked-edge graph of the grid. A bit in south marks the edge between a cell
// and the cell below it as blocked; a bit in east marks the edge to the cell on its right.
type board struct {
	south bitset
	east  bitset
}

// blocked reports whether a pawn on from cannot step in direction d, either because of a wall
// or because of the edge of the board.
func (b *board) blocked(from Pos, d direction) bool {
	i := from.index()
	switch d {
	case north:
		return from.Row == 0 || b.south.has(i-Size)
	case south:
		return from.Row == Size-1 || b.south.has(i)
	case west:
		return from.Col == 0 || b.east.has(i-1)
	default:
		return from.Col == Size-1 || b.east.has(i)
	}
}

func (b *board) addWall(w Wall) {
	r, c := w.Row, w.Col
	if w.Orient == Horizontal {
		b.south.set((r-1)*Size + c)
		b.south.set((r-1)*Size + c + 1)
		return
	}
	b.east.set(r*Size + c)
	b.east.set((r-1)*Size + c)
}
