package game

// NoPath is the distance reported when a goal row cannot be reached.
const NoPath = 100

// distances fills dist with the number of steps from start to every cell, -1 for unreachable cells.
// Pawns are ignored: jumps never make a path shorter than walking.
func (b *board) distances(start Pos, dist *[cells]int8) {
	for i := range dist {
		dist[i] = -1
	}
	var queue [cells]int8
	head, tail := 0, 0
	queue[tail] = int8(start.index())
	tail++
	dist[start.index()] = 0
	for head < tail {
		i := int(queue[head])
		head++
		p := posOf(i)
		for d := north; d <= east; d++ {
			if b.blocked(p, d) {
				continue
			}
			j := p.add(deltas[d]).index()
			if dist[j] >= 0 {
				continue
			}
			dist[j] = dist[i] + 1
			queue[tail] = int8(j)
			tail++
		}
	}
}

// reaches reports whether any cell of row can be reached from start. It stops at the first hit.
func (b *board) reaches(start Pos, row int) bool {
	if start.Row == row {
		return true
	}
	var seen bitset
	var queue [cells]int8
	head, tail := 0, 0
	queue[tail] = int8(start.index())
	tail++
	seen.set(start.index())
	for head < tail {
		p := posOf(int(queue[head]))
		head++
		for d := north; d <= east; d++ {
			if b.blocked(p, d) {
				continue
			}
			n := p.add(deltas[d])
			if n.Row == row {
				return true
			}
			j := n.index()
			if seen.has(j) {
				continue
			}
			seen.set(j)
			queue[tail] = int8(j)
			tail++
		}
	}
	return false
}

func rowDistance(dist *[cells]int8, row int) int {
	best := NoPath
	for c := 0; c < Size; c++ {
		if d := int(dist[row*Size+c]); d >= 0 && d < best {
			best = d
		}
	}
	return best
}

// Distance returns the length of the shortest walk from p's pawn to its goal row.
func (s State) Distance(p Player) int {
	d, _ := s.PathInfo(p)
	return d
}

// MovesToNextRow returns the length of the shortest walk from p's pawn to the next row towards
// its goal. It is 0 once the pawn stands on its goal row.
func (s State) MovesToNextRow(p Player) int {
	_, n := s.PathInfo(p)
	return n
}

// PathInfo returns Distance and MovesToNextRow from a single search.
func (s State) PathInfo(p Player) (toGoal, toNextRow int) {
	pawn := s.pawns[p]
	goal := p.GoalRow()
	if pawn.Row == goal {
		return 0, 0
	}
	var dist [cells]int8
	s.board.distances(pawn, &dist)
	next := pawn.Row - 1
	if p == Player2 {
		next = pawn.Row + 1
	}
	return rowDistance(&dist, goal), rowDistance(&dist, next)
}

// HasPath reports whether p's pawn can still reach its goal row.
func (s State) HasPath(p Player) bool {
	return s.board.reaches(s.pawns[p], p.GoalRow())
}

// pathEdges finds one shortest path from start to row and returns the edges it uses, in the
// layout of board. ok is false when row cannot be reached.
func (b *board) pathEdges(start Pos, row int) (edges board, ok bool) {
	if start.Row == row {
		return edges, true
	}
	var parent [cells]int8
	for i := range parent {
		parent[i] = -1
	}
	var queue [cells]int8
	head, tail := 0, 0
	queue[tail] = int8(start.index())
	tail++
	parent[start.index()] = int8(start.index())
	for head < tail {
		i := int(queue[head])
		head++
		p := posOf(i)
		for d := north; d <= east; d++ {
			if b.blocked(p, d) {
				continue
			}
			j := p.add(deltas[d]).index()
			if parent[j] >= 0 {
				continue
			}
			parent[j] = int8(i)
			if j/Size == row {
				edges.trace(&parent, j)
				return edges, true
			}
			queue[tail] = int8(j)
			tail++
		}
	}
	return edges, false
}

// trace marks the edges from cell j back to the root of parent.
func (b *board) trace(parent *[cells]int8, j int) {
	for int(parent[j]) != j {
		i := int(parent[j])
		lo, hi := i, j
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo == Size {
			b.south.set(lo)
		} else {
			b.east.set(lo)
		}
		j = i
	}
}

// cuts reports whether w blocks any edge of b.
func (b *board) cuts(w Wall) bool {
	r, c := w.Row, w.Col
	if w.Orient == Horizontal {
		return b.south.has((r-1)*Size+c) || b.south.has((r-1)*Size+c+1)
	}
	return b.east.has(r*Size+c) || b.east.has((r-1)*Size+c)
}
