package mcts

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/quoridorai/quoridor/game"
)

// Config is the structure to configure the search.
type Config struct {
	// Exploration is the UCB1 exploration constant.
	Exploration float32 `json:"exploration"`

	// Simulations bounds the number of iterations. Zero means no bound.
	Simulations int `json:"simulations"`

	// Timeout bounds the wall-clock time of a search. Zero means no bound.
	Timeout time.Duration `json:"timeout"`

	// MaxRolloutPlies ends a playout as a draw after this many plies.
	MaxRolloutPlies int `json:"max_rollout_plies"`
}

func DefaultConfig() Config {
	return Config{
		Exploration:     1.414,
		Simulations:     10000,
		MaxRolloutPlies: 150,
	}
}

func (c Config) IsValid() bool {
	return c.Exploration > 0 && c.MaxRolloutPlies > 0 &&
		c.Simulations >= 0 && c.Timeout >= 0 &&
		(c.Simulations > 0 || c.Timeout > 0)
}

// Tree is the manager of the memory of one search. Nodes live in a single arena and refer to
// each other by index, so a whole tree is recycled by Reset without pointer chasing.
//
// A Tree is not safe for concurrent use; independent searches each use their own Tree.
type Tree struct {
	Config
	rand *rand.Rand

	// memory related fields
	nodes    []Node
	children [][]naughty
	untried  [][]int32 // action indices not expanded yet, per node
	freelist []naughty

	root     naughty
	playouts int
	path     []naughty // scratch space for one iteration
}

// New creates a tree drawing its randomness from rng.
func New(conf Config, rng *rand.Rand) *Tree {
	return &Tree{
		Config:   conf,
		rand:     rng,
		nodes:    make([]Node, 0, 1024),
		children: make([][]naughty, 0, 1024),
		untried:  make([][]int32, 0, 1024),
		root:     nilNode,
	}
}

// New creates a new node for move.
func (t *Tree) New(move int32) naughty {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	N.move = move
	N.visits = 0
	N.score = 0
	N.status = Active
	N.expanded = false
	return n
}

// alloc tries to get a node from the free list. If none is found a new node is allocated into the master arena.
func (t *Tree) alloc() naughty {
	l := len(t.freelist)
	if l == 0 {
		t.nodes = append(t.nodes, Node{id: naughty(len(t.nodes))})
		t.children = append(t.children, nil)
		t.untried = append(t.untried, nil)
		return naughty(len(t.nodes) - 1)
	}

	i := t.freelist[l-1]
	t.freelist = t.freelist[:l-1]
	return i
}

// free puts the node back into the freelist.
func (t *Tree) free(n naughty) {
	t.children[n] = t.children[n][:0]
	t.untried[n] = t.untried[n][:0]
	t.nodes[n].reset()
	t.freelist = append(t.freelist, n)
}

// nodeFromNaughty gets the node given the pointer. The pointer is only good until the next alloc.
func (t *Tree) nodeFromNaughty(ptr naughty) *Node {
	return &t.nodes[int(ptr)]
}

// Children returns a list of children
func (t *Tree) Children(of naughty) []naughty {
	return t.children[of]
}

// Root returns the root of the last search, or nil before any search.
func (t *Tree) Root() *Node {
	if !t.root.isValid() {
		return nil
	}
	return t.nodeFromNaughty(t.root)
}

// Nodes returns the number of live nodes.
func (t *Tree) Nodes() int { return len(t.nodes) - len(t.freelist) }

// Playouts returns the number of playouts of the last search.
func (t *Tree) Playouts() int { return t.playouts }

// expand generates the untried actions of n in state s.
func (t *Tree) expand(n naughty, s game.State) {
	actions := s.LegalActions()
	untried := t.untried[n][:0]
	for _, a := range actions {
		untried = append(untried, a.Index())
	}
	t.untried[n] = untried
	t.nodeFromNaughty(n).expanded = true
}

// popUntried removes a random untried action of n.
func (t *Tree) popUntried(n naughty) int32 {
	untried := t.untried[n]
	k := t.rand.Intn(len(untried))
	move := untried[k]
	untried[k] = untried[len(untried)-1]
	t.untried[n] = untried[:len(untried)-1]
	return move
}

// Reset frees every node.
func (t *Tree) Reset() {
	t.freelist = t.freelist[:0]
	for i := len(t.nodes) - 1; i >= 0; i-- {
		t.free(naughty(i))
	}
	t.root = nilNode
	t.playouts = 0
}
