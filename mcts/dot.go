package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const graphName = "mcts"

// Dot renders the tree of the last search in Graphviz format, down to maxDepth plies below the
// root. Children are listed most visited first.
func (t *Tree) Dot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}
	if t.root.isValid() {
		if err := t.dot(g, t.root, maxDepth); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func (t *Tree) dot(g *gographviz.Graph, n naughty, depth int) error {
	node := t.nodeFromNaughty(n)
	label := "root"
	if node.move >= 0 {
		label = node.Action().String()
	}
	attrs := map[string]string{
		"label": fmt.Sprintf("%q", fmt.Sprintf("%s\n%d visits, %.3f", label, node.visits, node.Value())),
	}
	if err := g.AddNode(graphName, dotName(n), attrs); err != nil {
		return errors.Wrapf(err, "adding node %v", node)
	}
	if depth == 0 {
		return nil
	}

	children := append([]naughty(nil), t.children[n]...)
	sortByVisits(children, t)
	for _, kid := range children {
		if err := t.dot(g, kid, depth-1); err != nil {
			return err
		}
		if err := g.AddEdge(dotName(n), dotName(kid), true, nil); err != nil {
			return errors.Wrapf(err, "adding edge %d -> %d", n, kid)
		}
	}
	return nil
}

func dotName(n naughty) string { return fmt.Sprintf("n%d", n) }
