package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
)

func mustState(t *testing.T, str string) game.State {
	t.Helper()
	s, err := game.ParseState(str)
	require.NoError(t, err)
	return s
}

// randomStates plays n random games for plies moves each and returns the positions reached.
func randomStates(t *testing.T, n, plies int, seed uint64) []game.State {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var retVal []game.State
	for len(retVal) < n {
		s := game.NewGame()
		for i := 0; i < plies && !s.Over(); i++ {
			s = s.Play(chooseRandom(s, rng))
		}
		if !s.Over() {
			retVal = append(retVal, s)
		}
	}
	return retVal
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		want func() Config
	}{
		{"Random", func() Config { return DefaultConfig(Random) }},
		{"Balanced", func() Config { return Config{Kind: Balanced, WallProbability: 0.5} }},
		{"Minimax", func() Config { return DefaultConfig(Minimax) }},
		{"Minimax3", func() Config { return Config{Kind: Minimax, Depth: 3} }},
		{"SimulatedAnnealing0.5", func() Config {
			c := DefaultConfig(SimulatedAnnealing)
			c.Temperature = 0.5
			return c
		}},
		{"MCTS60k", func() Config {
			c := DefaultConfig(MCTS)
			c.MCTS.Simulations = 60000
			return c
		}},
		{"MCTS500", func() Config {
			c := DefaultConfig(MCTS)
			c.MCTS.Simulations = 500
			return c
		}},
		{"MCTS1sec", func() Config {
			c := DefaultConfig(MCTS)
			c.MCTS.Simulations = 0
			c.MCTS.Timeout = time.Second
			return c
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf, err := Parse(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.want(), conf)
			assert.True(t, conf.IsValid())

			again, err := Parse(conf.Name())
			require.NoError(t, err)
			assert.Equal(t, conf, again)
		})
	}

	bare, err := Parse("Minimax")
	require.NoError(t, err)
	assert.Equal(t, 1, bare.Depth)

	for _, name := range []string{"", "Nope", "Minimax0", "Minimaxx", "MCTSk", "MCTS0sec", "SimulatedAnnealing-1", "random"} {
		_, err := Parse(name)
		assert.Equal(t, ErrUnknownStrategy, errors.Cause(err), "%q", name)
	}
}

func TestConfigJSON(t *testing.T) {
	conf := DefaultConfig(MCTS)
	b, err := json.Marshal(conf)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"MCTS"`)

	var got Config
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, conf, got)

	err = json.Unmarshal([]byte(`{"kind":"Clairvoyant"}`), &got)
	assert.Error(t, err)

	_, err = json.Marshal(Config{Kind: maxKind})
	assert.Error(t, err)
}

func TestChooseReturnsLegalMoves(t *testing.T) {
	confs := []Config{
		DefaultConfig(Random),
		DefaultConfig(ShortestPath),
		DefaultConfig(Defensive),
		DefaultConfig(Balanced),
		DefaultConfig(Adaptive),
		DefaultConfig(Mirror),
		{Kind: Minimax, Depth: 1},
		DefaultConfig(SimulatedAnnealing),
	}
	mc := DefaultConfig(MCTS)
	mc.MCTS.Simulations = 100
	confs = append(confs, mc)

	states := append(randomStates(t, 3, 12, 7), game.NewGame())
	for _, conf := range confs {
		t.Run(conf.Name(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			for _, s := range states {
				before := s
				m, err := Choose(context.Background(), s, conf, rng)
				require.NoError(t, err)
				assert.True(t, s.IsLegal(m), "%s is not legal in %v", m, s)
				assert.Equal(t, before, s)
			}
		})
	}
}

func TestChooseErrors(t *testing.T) {
	over := mustState(t, " /  / e9 e5 / 10 10 / 2")
	rng := rand.New(rand.NewSource(1))
	for k := Random; k < maxKind; k++ {
		m, err := Choose(context.Background(), over, DefaultConfig(k), rng)
		assert.Equal(t, game.ResignMove, m)
		assert.Equal(t, game.ErrNoMove, errors.Cause(err), "%v", k)
	}

	_, err := Choose(context.Background(), game.NewGame(), DefaultConfig(Human), rng)
	assert.Equal(t, ErrHumanPlayer, errors.Cause(err))

	_, err = Choose(context.Background(), game.NewGame(), Config{Kind: Minimax}, rng)
	assert.Equal(t, game.ErrInvalidConfig, errors.Cause(err))
}

func TestShortestPathRace(t *testing.T) {
	s := game.NewGame()
	conf := DefaultConfig(ShortestPath)
	for ply := 0; !s.Over(); ply++ {
		require.Less(t, ply, 20, "game should be over by now")
		me := s.Turn()
		before := s.Distance(me)
		m, err := Choose(context.Background(), s, conf, nil)
		require.NoError(t, err)
		require.NoError(t, s.Apply(m))
		assert.Less(t, s.Distance(me), before, "%s did not get %v closer", m, me)
	}
}

func TestWinningMoveIsTaken(t *testing.T) {
	s := mustState(t, " /  / e8 a2 / 10 10 / 1")
	require.True(t, s.CheckWin("e9"))
	for _, k := range []Kind{ShortestPath, Defensive, Balanced, Adaptive, Minimax, SimulatedAnnealing, MCTS} {
		conf := DefaultConfig(k)
		if k == MCTS {
			conf.MCTS.Simulations = 20
		}
		m, err := Choose(context.Background(), s, conf, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, game.Move("e9"), m, "%v", k)
	}
}

func TestDefensive(t *testing.T) {
	s := game.NewGame()
	rng := rand.New(rand.NewSource(1))

	a := defensive(s, 0, rng)
	assert.Equal(t, game.Move("e2"), a.Move())

	a = defensive(s, 1, rng)
	require.Equal(t, game.WallAction, a.Kind)
	gain := s.Play(a).Distance(game.Player2) - s.Distance(game.Player2)
	assert.Greater(t, gain, 0)
	for _, w := range s.WallMoves() {
		assert.LessOrEqual(t, s.Play(w).Distance(game.Player2)-s.Distance(game.Player2), gain, "%v", w)
	}

	// no walls left: always race
	s = mustState(t, " /  / e1 e9 / 0 10 / 1")
	assert.Equal(t, game.Move("e2"), defensive(s, 1, rng).Move())

	// a winning step beats any wall and leaves the rng untouched
	s = mustState(t, " /  / e8 a2 / 10 10 / 1")
	rng, ref := rand.New(rand.NewSource(7)), rand.New(rand.NewSource(7))
	assert.Equal(t, game.Move("e9"), defensive(s, 1, rng).Move())
	assert.Equal(t, ref.Float64(), rng.Float64())
}

func TestMirror(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	s := game.NewGame()
	require.NoError(t, s.Apply("e2"))
	m, err := Choose(context.Background(), s, DefaultConfig(Mirror), rng)
	require.NoError(t, err)
	assert.Equal(t, game.Move("e8"), m)

	s = game.NewGame()
	require.NoError(t, s.Apply("e3h"))
	m, err = Choose(context.Background(), s, DefaultConfig(Mirror), rng)
	require.NoError(t, err)
	assert.Equal(t, game.Move("d6h"), m)

	// first move of the game falls back to Adaptive
	m, err = Choose(context.Background(), game.NewGame(), DefaultConfig(Mirror), rng)
	require.NoError(t, err)
	assert.Equal(t, game.Move("e2"), m)
}

func TestAdaptive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, game.Move("e2"), adaptive(game.NewGame(), rng).Move())

	// Player1 is behind and defends with a wall or races, never anything else
	s := mustState(t, " /  / e1 e3 / 10 10 / 1")
	a := adaptive(s, rng)
	assert.True(t, s.Allows(a))
}

func TestMinimaxScoreSymmetry(t *testing.T) {
	for _, s := range randomStates(t, 2, 8, 11) {
		for depth := 1; depth <= 2; depth++ {
			p := s.Turn()
			v := MinimaxScore(s, depth, p)
			assert.Equal(t, v, -MinimaxScore(s, depth, p.Opponent()))
			assert.InDelta(t, v, MinimaxScore(s.Mirror(), depth, p.Opponent()), 1e-9, "%v at depth %d", s, depth)
		}
	}
}

func TestMinimaxSeesForcedWin(t *testing.T) {
	s := mustState(t, " /  / e8 a2 / 0 0 / 1")
	a, v := minimax(s, 2)
	assert.Equal(t, game.Move("e9"), a.Move())
	assert.Greater(t, v, winScore/2)

	// Player2 cannot stop e8-e9 once Player1 stands on e7 with no walls on either side
	s = mustState(t, " /  / e7 a5 / 0 0 / 1")
	_, v = minimax(s, 3)
	assert.Greater(t, v, winScore/2)
}

func TestAnnealing(t *testing.T) {
	s := randomStates(t, 1, 10, 5)[0]
	conf := DefaultConfig(SimulatedAnnealing)

	first := anneal(context.Background(), s, conf, rand.New(rand.NewSource(8)))
	again := anneal(context.Background(), s, conf, rand.New(rand.NewSource(8)))
	assert.Equal(t, first, again)
	assert.True(t, s.Allows(first))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := anneal(ctx, s, conf, rand.New(rand.NewSource(8)))
	assert.True(t, s.Allows(a))
}

func TestAnnealingNeighbours(t *testing.T) {
	an := newAnnealer(game.NewGame())
	moves := func(as []game.Action) []game.Move {
		retVal := make([]game.Move, len(as))
		for i, a := range as {
			retVal[i] = a.Move()
		}
		return retVal
	}

	wall, err := game.ParseMove("e3h")
	require.NoError(t, err)
	assert.ElementsMatch(t, []game.Move{"d1", "f1", "e2", "e4h", "e2h", "d3h", "f3h", "e3v"}, moves(an.neighbours(wall)))

	pawn, err := game.ParseMove("e2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []game.Move{"d1", "f1", "d8h", "d8v", "e8h", "e8v"}, moves(an.neighbours(pawn)))
}

func TestAnnealingTemperatureShapesTheWalk(t *testing.T) {
	for _, s := range randomStates(t, 3, 8, 17) {
		cold, hot := DefaultConfig(SimulatedAnnealing), DefaultConfig(SimulatedAnnealing)
		cold.Temperature, hot.Temperature = 1e-12, 1e6

		coldWalk := newAnnealer(s)
		coldWalk.run(context.Background(), cold, rand.New(rand.NewSource(4)))
		hotWalk := newAnnealer(s)
		hotWalk.run(context.Background(), hot, rand.New(rand.NewSource(4)))

		require.Len(t, coldWalk.walk, cold.GlobalIterations*cold.LocalIterations)
		require.Len(t, hotWalk.walk, hot.GlobalIterations*hot.LocalIterations)
		assert.NotEqual(t, coldWalk.walk, hotWalk.walk, "%v", s)

		// a frozen walk only climbs, a hot one also steps down
		for i := 1; i < len(coldWalk.walk); i++ {
			assert.GreaterOrEqual(t, coldWalk.score(coldWalk.walk[i]), coldWalk.score(coldWalk.walk[i-1]))
		}
		var down bool
		for i := 1; i < len(hotWalk.walk); i++ {
			if hotWalk.score(hotWalk.walk[i]) < hotWalk.score(hotWalk.walk[i-1]) {
				down = true
				break
			}
		}
		assert.True(t, down, "%v", s)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	s := randomStates(t, 1, 6, 13)[0]
	for _, k := range []Kind{Random, Defensive, Balanced, Adaptive} {
		first, err := Choose(context.Background(), s, DefaultConfig(k), rand.New(rand.NewSource(21)))
		require.NoError(t, err)
		again, err := Choose(context.Background(), s, DefaultConfig(k), rand.New(rand.NewSource(21)))
		require.NoError(t, err)
		assert.Equal(t, first, again, "%v", k)
	}
}

func TestChooseLogsToTheContextLogger(t *testing.T) {
	var global, local bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&global)
	defer func() { log.Logger = old }()

	s := game.NewGame()
	_, err := Choose(context.Background(), s, DefaultConfig(ShortestPath), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, local.String())

	ctx := zerolog.New(&local).WithContext(context.Background())
	m, err := Choose(ctx, s, DefaultConfig(ShortestPath), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.Move("e2"), m)

	assert.Empty(t, global.String())
	assert.Contains(t, local.String(), `"strategy":"ShortestPath"`)
	assert.Contains(t, local.String(), `"move":"e2"`)
}
