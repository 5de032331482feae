package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move parses but breaks a rule of the game.
	ErrIllegalMove = errors.New("illegal move")
	// ErrMalformedNotation is returned when a move or state string cannot be parsed.
	ErrMalformedNotation = errors.New("malformed notation")
	// ErrNoWallsRemaining is returned when a wall is placed by a player who has none left.
	ErrNoWallsRemaining = errors.New("no walls remaining")
	// ErrNoMove is returned when there is no legal move at all, i.e. the game is over.
	ErrNoMove = errors.New("no legal move")
	// ErrInvalidConfig is returned for unsupported board sizes and wall counts.
	ErrInvalidConfig = errors.New("invalid game configuration")
)
