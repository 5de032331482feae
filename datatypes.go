package quoridor

import (
	"github.com/quoridorai/quoridor/game"
	"github.com/quoridorai/quoridor/opening"
	"github.com/quoridorai/quoridor/strategy"
)

// Config for a match between two agents.
type Config struct {
	Name           string         `json:"name"`
	Players        [2]AgentConfig `json:"players"`
	WallsPerPlayer int            `json:"walls_per_player"`

	// MaxPlies ends an Arena game as a draw. Zero means no limit.
	MaxPlies int    `json:"max_plies"`
	Seed     uint64 `json:"seed"`
}

// AgentConfig names the strategy and the opening of one player, the way strategy.Parse and
// opening.Lookup read them.
type AgentConfig struct {
	Strategy string `json:"strategy"`
	Opening  string `json:"opening"`
}

func DefaultConfig() Config {
	return Config{
		Name: "Quoridor",
		Players: [2]AgentConfig{
			{Strategy: "ShortestPath", Opening: opening.NoOpening},
			{Strategy: "Adaptive", Opening: opening.NoOpening},
		},
		WallsPerPlayer: game.DefaultWalls,
		MaxPlies:       200,
		Seed:           1,
	}
}

func (c Config) IsValid() bool {
	if c.WallsPerPlayer < 0 || c.WallsPerPlayer > game.DefaultWalls || c.MaxPlies < 0 {
		return false
	}
	for _, p := range c.Players {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

func (c AgentConfig) IsValid() bool {
	conf, err := strategy.Parse(c.Strategy)
	if err != nil || !conf.IsValid() {
		return false
	}
	_, err = opening.Lookup(c.Opening)
	return err == nil
}

// Square is a board square in array coordinates, row 0 at the top.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Snapshot is the exported view of a game.
type Snapshot struct {
	Size         int         `json:"size"`
	Player1      Square      `json:"player1"`
	Player2      Square      `json:"player2"`
	Player1Walls int         `json:"player1Walls"`
	Player2Walls int         `json:"player2Walls"`
	HWalls       []game.Move `json:"hWalls"`
	VWalls       []game.Move `json:"vWalls"`
	ActivePlayer int         `json:"activePlayer"`
	LastMove     game.Move   `json:"lastMove"`
	State        string      `json:"currentStateString"`
}

// Export builds the snapshot of s.
func Export(s game.State) Snapshot {
	p1, p2 := s.Pawn(game.Player1), s.Pawn(game.Player2)
	retVal := Snapshot{
		Size:         game.Size,
		Player1:      Square{p1.Row, p1.Col},
		Player2:      Square{p2.Row, p2.Col},
		Player1Walls: s.WallsLeft(game.Player1),
		Player2Walls: s.WallsLeft(game.Player2),
		HWalls:       []game.Move{},
		VWalls:       []game.Move{},
		ActivePlayer: s.Turn().Number(),
		LastMove:     s.LastMove(),
		State:        s.String(),
	}
	for _, w := range s.HWalls() {
		retVal.HWalls = append(retVal.HWalls, w.Move())
	}
	for _, w := range s.VWalls() {
		retVal.VWalls = append(retVal.VWalls, w.Move())
	}
	return retVal
}
