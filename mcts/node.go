package mcts

import (
	"fmt"

	"github.com/quoridorai/quoridor/game"
)

type Status uint32

const (
	Invalid Status = iota
	Active
)

func (a Status) String() string {
	switch a {
	case Invalid:
		return "Invalid"
	case Active:
		return "Active"
	}
	return "UNKNOWN STATUS"
}

// Node is a position in the search tree, reached by playing move from its parent.
type Node struct {
	move     int32   // game.Action index, -1 for the root
	visits   uint32  // N(s, a)
	score    float32 // accumulated reward of the player who played move
	status   Status
	expanded bool // untried moves have been generated

	id naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	move := "root"
	if n.move >= 0 {
		move = n.Action().String()
	}
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Score %v, Visits %v, Status: %v}",
		n.id, move, n.score, n.visits, n.status)
}

// Action returns the action leading to this node.
func (n *Node) Action() game.Action { return game.ActionAt(n.move) }

func (n *Node) Visits() uint32 { return n.visits }

// Value is the mean reward of the node for the player who played its move.
func (n *Node) Value() float32 {
	if n.visits == 0 {
		return 0
	}
	return n.score / float32(n.visits)
}

// Update records one more playout through the node.
func (n *Node) Update(reward float32) {
	n.visits++
	n.score += reward
}

func (n *Node) IsValid() bool { return n.status != Invalid }

func (n *Node) ID() int { return int(n.id) }

func (n *Node) reset() {
	n.move = -1
	n.visits = 0
	n.score = 0
	n.status = Invalid
	n.expanded = false
}
