package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustState(t *testing.T, str string) State {
	t.Helper()
	s, err := ParseState(str)
	require.NoError(t, err)
	return s
}

func TestInitialPawnMoves(t *testing.T) {
	s := NewGame()
	assert.ElementsMatch(t, []Move{"d1", "f1", "e2"}, s.LegalPawnMoves())

	require.NoError(t, s.Apply("e2"))
	assert.ElementsMatch(t, []Move{"d9", "f9", "e8"}, s.LegalPawnMoves())
}

func TestJumps(t *testing.T) {
	cases := []struct {
		name  string
		state string
		want  []Move
	}{
		{"straight jump", " / / e5 e6 / 10 10 / 1", []Move{"d5", "f5", "e4", "e7"}},
		{"wall behind opponent", "e6 / / e5 e6 / 10 9 / 1", []Move{"d6", "f6", "d5", "f5", "e4"}},
		{"edge behind opponent", " / / e8 e9 / 10 10 / 1", []Move{"d9", "f9", "d8", "f8", "e7"}},
		{"wall beside opponent", "e6 / e5 / e5 e6 / 10 8 / 1", []Move{"d6", "d5", "e4"}},
		{"player two jumps north", " / / e5 e4 / 10 10 / 2", []Move{"e6", "e3", "d4", "f4"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := mustState(t, c.state)
			assert.ElementsMatch(t, c.want, s.LegalPawnMoves())
		})
	}
}

func TestWallPlacement(t *testing.T) {
	s := NewGame()
	require.NoError(t, s.Apply("e3v"))
	assert.Equal(t, 9, s.WallsLeft(Player1))
	assert.Equal(t, Player2, s.Turn())

	before := s
	err := s.Apply("e3v")
	require.Error(t, err)
	assert.Equal(t, ErrIllegalMove, errors.Cause(err))
	assert.Equal(t, before, s, "failed move must not mutate the state")
}

func TestWallConflicts(t *testing.T) {
	cases := []struct {
		placed, try Move
		legal       bool
	}{
		{"e5h", "e5h", false},
		{"e5h", "d5h", false},
		{"e5h", "f5h", false},
		{"e5h", "e5v", false},
		{"e5h", "c5h", true},
		{"e5h", "g5h", true},
		{"e5h", "d5v", true},
		{"e5h", "f5v", true},
		{"e5v", "e5v", false},
		{"e5v", "e4v", false},
		{"e5v", "e6v", false},
		{"e5v", "e5h", false},
		{"e5v", "e3v", true},
		{"e5v", "e7v", true},
		{"e5v", "e4h", true},
		{"e5v", "e6h", true},
	}
	for _, c := range cases {
		t.Run(string(c.placed)+"/"+string(c.try), func(t *testing.T) {
			s := NewGame()
			require.NoError(t, s.Apply(c.placed))
			assert.Equal(t, c.legal, s.IsLegal(c.try))
			assert.Equal(t, c.legal, contains(s.LegalWalls(), c.try))
		})
	}
}

func TestWallMustLeaveAPath(t *testing.T) {
	// player two on a9 is boxed into a9/b9 by a8h; b8v would close the box
	s := mustState(t, "a8 / / e1 a9 / 10 10 / 1")
	require.True(t, s.HasPath(Player2))

	err := s.Apply("b8v")
	require.Error(t, err)
	assert.Equal(t, ErrIllegalMove, errors.Cause(err))
	assert.Equal(t, 10, s.WallsLeft(Player2))
	assert.Equal(t, 10, s.WallsLeft(Player1))
	assert.NotContains(t, s.LegalWalls(), Move("b8v"))
}

func TestNoWallsRemaining(t *testing.T) {
	s := mustState(t, " / / e1 e9 / 0 10 / 1")
	assert.Empty(t, s.LegalWalls())
	err := s.Apply("a3h")
	require.Error(t, err)
	assert.Equal(t, ErrNoWallsRemaining, errors.Cause(err))
}

func TestApplyErrors(t *testing.T) {
	cases := []struct {
		move Move
		want error
	}{
		{"e3", ErrIllegalMove},
		{"e1", ErrIllegalMove},
		{"z1", ErrMalformedNotation},
		{"e0", ErrMalformedNotation},
		{"e9h", ErrIllegalMove},
		{"i3v", ErrIllegalMove},
		{"e3x", ErrMalformedNotation},
		{"", ErrMalformedNotation},
		{"resign", ErrMalformedNotation},
	}
	for _, c := range cases {
		t.Run(string(c.move), func(t *testing.T) {
			s := NewGame()
			err := s.Apply(c.move)
			require.Error(t, err)
			assert.Equal(t, c.want, errors.Cause(err))
			assert.Equal(t, NewGame(), s)
		})
	}
}

func TestCheckWin(t *testing.T) {
	s := mustState(t, " / / e8 a2 / 10 10 / 1")
	assert.True(t, s.CheckWin("e9"))
	assert.False(t, s.CheckWin("d8"))
	assert.False(t, s.CheckWin("e9h"))

	s = mustState(t, " / / a8 e2 / 10 10 / 2")
	assert.True(t, s.CheckWin("e1"))

	require.NoError(t, s.Apply("e1"))
	winner, over := s.Winner()
	assert.True(t, over)
	assert.Equal(t, Player2, winner)
	assert.Empty(t, s.LegalPawnMoves())
	assert.Empty(t, s.LegalWalls())
	assert.Error(t, s.Apply("a7"))
}

// TestRandomPlay plays random games and checks the invariants after every move.
func TestRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for g := 0; g < 20; g++ {
		s := NewGame()
		for i := 0; i < 200 && !s.Over(); i++ {
			actions := s.LegalActions()
			require.NotEmpty(t, actions)
			a := actions[rng.Intn(len(actions))]
			mover := s.Turn()

			require.NoError(t, s.Apply(a.Move()), "legal move %v rejected in %v", a, s)
			assert.Equal(t, mover.Opponent(), s.Turn())
			assert.True(t, s.HasPath(Player1), s.String())
			assert.True(t, s.HasPath(Player2), s.String())
			for _, p := range []Player{Player1, Player2} {
				assert.GreaterOrEqual(t, s.WallsLeft(p), 0)
			}
			assert.Equal(t, 2*DefaultWalls, len(s.Walls())+s.WallsLeft(Player1)+s.WallsLeft(Player2))
		}
	}
}

func contains(ms []Move, m Move) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

func TestWallMovesMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	s := NewGame()
	for i := 0; i < 120 && !s.Over(); i++ {
		var want []Action
		for r := Size - 1; r >= 1; r-- {
			for c := 0; c < Size-1; c++ {
				for _, o := range []Orient{Horizontal, Vertical} {
					if w := (Wall{Pos{r, c}, o}); s.canPlace(w) == nil {
						want = append(want, PlaceWall(w))
					}
				}
			}
		}
		require.Equal(t, want, s.WallMoves(), s.String())

		actions := s.LegalActions()
		s = s.Play(actions[rng.Intn(len(actions))])
	}
}
