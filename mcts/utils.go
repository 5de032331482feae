package mcts

import "sort"

// byVisits sorts a list of nodes with the most visited first.
type byVisits struct {
	l []naughty
	t *Tree
}

func (l byVisits) Len() int      { return len(l.l) }
func (l byVisits) Swap(i, j int) { l.l[i], l.l[j] = l.l[j], l.l[i] }
func (l byVisits) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])

	return li.visits > lj.visits
}

func sortByVisits(l []naughty, t *Tree) { sort.Stable(byVisits{l: l, t: t}) }
