// Package opening replays named literal move sequences at the start of a game.
package opening

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/strategy"
)

// NoOpening is the opening without any book moves.
const NoOpening = "No Opening"

// Opening is a named pair of literal move lists, one per player.
type Opening struct {
	Name  string
	moves [2][]game.Move
}

// Lookup returns the opening called name. The empty name is NoOpening.
func Lookup(name string) (Opening, error) {
	if name == "" {
		name = NoOpening
	}
	moves, ok := book[name]
	if !ok {
		return Opening{}, errors.Wrapf(strategy.ErrUnknownStrategy, "opening %q", name)
	}
	return Opening{Name: name, moves: moves}, nil
}

// Names lists the openings in the book, sorted.
func Names() []string {
	retVal := make([]string, 0, len(book))
	for name := range book {
		retVal = append(retVal, name)
	}
	sort.Strings(retVal)
	return retVal
}

// Moves returns the book moves of p.
func (o Opening) Moves(p game.Player) []game.Move {
	return append([]game.Move(nil), o.moves[p]...)
}

// Sequence interleaves both lists starting with Player1, as long as the side to move still has
// book moves.
func (o Opening) Sequence() []game.Move {
	var retVal []game.Move
	var next [2]int
	for p := game.Player1; next[p] < len(o.moves[p]); p = p.Opponent() {
		retVal = append(retVal, o.moves[p][next[p]])
		next[p]++
	}
	return retVal
}

// Cursor walks one player's book moves during a live game. Once the book runs out or a book move
// is not legal in the live position, the cursor is done for good.
type Cursor struct {
	opening Opening
	player  game.Player
	next    int
	done    bool
}

// NewCursor returns a cursor over p's moves in o.
func NewCursor(o Opening, p game.Player) *Cursor {
	return &Cursor{opening: o, player: p}
}

// Next returns the book move to play in s. ok is false when control belongs to the strategy.
func (c *Cursor) Next(s game.State) (m game.Move, ok bool) {
	if c.done || s.Turn() != c.player {
		return "", false
	}
	moves := c.opening.moves[c.player]
	if c.next >= len(moves) {
		c.done = true
		return "", false
	}
	m = moves[c.next]
	if !s.IsLegal(m) {
		c.done = true
		return "", false
	}
	c.next++
	return m, true
}

// Done reports whether the cursor has handed control to the strategy.
func (c *Cursor) Done() bool { return c.done }

// Reset rewinds the cursor for a new game.
func (c *Cursor) Reset() {
	c.next = 0
	c.done = false
}

// Validate replays the sequence of each named opening on a fresh game, every opening in the
// book when no name is given. All unknown names and failing moves are reported together.
func Validate(names ...string) error {
	if len(names) == 0 {
		names = Names()
	}
	var errs error
	for _, name := range names {
		o, err := Lookup(name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		s := game.NewGame()
		for i, m := range o.Sequence() {
			if err := s.Apply(m); err != nil {
				errs = multierror.Append(errs, errors.Wrapf(err, "opening %q ply %d", name, i+1))
				break
			}
		}
	}
	return errs
}
