package opening

import "github.com/quoridorai/quoridor/game"

// book holds the literal move lists of every named opening, Player1 first.
var book = map[string][2][]game.Move{
	NoOpening: {},

	"Standard Opening": {
		{"e2", "e3", "e4", "e3v"},
		{"e8", "e7", "e6", "e6v"},
	},
	"Standard Opening (Symmetrical)": {
		{"e2", "e3", "e4", "e3v"},
		{"e8", "e7", "e6", "d6v"},
	},
	"Shiller Opening": {
		{"e2", "e3", "e4", "c3v"},
		{"e8", "e7", "e6"},
	},
	"Rush Variation": {
		{"e2", "e3", "e4", "d5v", "e4h", "g4h", "h5v"},
		{"e8", "e7", "e6", "e6h", "f6", "f5", "g5"},
	},
	"Gap Opening": {
		{"e2", "e3", "e4"},
		{"e8", "e7", "e6"},
	},
	"Gap Opening (Mainline)": {
		{"e2", "e3", "e4"},
		{"e8", "e7", "e6", "g6h"},
	},
	"Ala Opening": {
		{"e2", "e3", "e4", "d5h", "f5h", "c4v", "g4v"},
		{"e8", "e7", "e6"},
	},

	// defensive
	"Sidewall Opening": {
		{"c3h", "f3h"},
		{"c6h", "f6h"},
	},
	"Stonewall": {
		{"e2", "e3", "d2h"},
		{"e8", "e7", "e7h"},
	},
	"Anti-Gap": {
		{"e2", "e3", "e4"},
		{"e8", "e7", "e6", "b3h"},
	},

	"Sidewall": {
		{"e2", "d7v"},
		{"e8"},
	},
	"Sidewall (Proper Counter)": {
		{"e2", "d7v"},
		{"e8", "c7h"},
	},
	"Quick Box Variation": {
		{"e2"},
		{"e8", "d1h"},
	},
	"Shatranj Opening": {
		{"d1v"},
		nil,
	},
	"Lee Inversion": {
		{"e1v"},
		nil,
	},
}
